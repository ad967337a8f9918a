package repo

import "context"

// CompoundInfo holds the basic information for a chemical compound.
type CompoundInfo struct {
	CID              int64   `json:"cid"`
	Name             string  `json:"name"`
	MolecularFormula string  `json:"molecular_formula"`
	MolecularWeight  float64 `json:"molecular_weight"`
}

// PubChemRepo defines the interface for interacting with the PubChem API.
// A missing compound is a normal outcome and returns code.CompoundNotFound.
type PubChemRepo interface {
	GetCompoundByName(ctx context.Context, name string) (*CompoundInfo, error)
	// DownloadImage fetches the compound PNG into dir, skipping the download
	// when a same-named file already exists. Returns the local path.
	DownloadImage(ctx context.Context, cid int64, dir string) (string, error)
}
