package code

import (
	"fmt"
)

// Code is a stable business error code. It implements error so a bare code
// can be returned directly; WithMsg/WithErr attach detail without losing the code.
type Code int32

type Err struct {
	Code  Code
	Msg   string
	Cause error
}

func (e *Err) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code.String(), e.Msg, e.Cause)
	}
	if e.Msg != "" {
		return fmt.Sprintf("%s: %s", e.Code.String(), e.Msg)
	}
	return e.Code.String()
}

func (e *Err) Unwrap() error {
	return e.Cause
}

func (c Code) Error() string {
	return c.String()
}

func (c Code) WithMsg(msg string) *Err {
	return &Err{Code: c, Msg: msg}
}

func (c Code) WithMsgf(format string, args ...any) *Err {
	return &Err{Code: c, Msg: fmt.Sprintf(format, args...)}
}

func (c Code) WithErr(err error) *Err {
	return &Err{Code: c, Cause: err}
}

// From extracts the business code of err, defaulting to UnDefineErr.
func From(err error) Code {
	if err == nil {
		return Success
	}
	switch v := err.(type) {
	case Code:
		return v
	case *Err:
		return v.Code
	default:
		return UnDefineErr
	}
}

const (
	Success Code = 0

	// generic
	UnDefineErr Code = 10000 + iota
	ParamErr
	UnLogin
	LoginFormatErr
	InvalidToken
	PermissionDenied

	// datastore
	RecordNotFound
	CreateDataErr
	UpdateDataErr
	DeleteDataErr
	QueryRecordErr

	// chemical
	ChemicalDuplicateErr
	ChemicalInUseErr
	ChemicalCreateErr
	ChemicalQueryErr
	CompoundNotFound

	// unit
	ConversionUnsupported
	UnitNotFound

	// storage tree
	StorageNotFound
	StorageHasChildrenErr
	StorageCreateErr

	// stock
	StockNotFound
	StockCreateErr
	StockQueryErr
	ExtractionCreateErr

	// bulk import
	ImportColumnsMissingErr
	ImportRowErr
	ImportFileErr

	// rpc
	RPCHttpErr
	RPCHttpCodeErr
)

var codeText = map[Code]string{
	Success:                 "success",
	UnDefineErr:             "internal error",
	ParamErr:                "invalid parameter",
	UnLogin:                 "not logged in",
	LoginFormatErr:          "malformed authorization header",
	InvalidToken:            "invalid token",
	PermissionDenied:        "you are not permitted to apply changes, please contact your group admin",
	RecordNotFound:          "record not found",
	CreateDataErr:           "create record failed",
	UpdateDataErr:           "update record failed",
	DeleteDataErr:           "delete record failed",
	QueryRecordErr:          "query record failed",
	ChemicalDuplicateErr:    "chemical already exists in this workgroup",
	ChemicalInUseErr:        "chemical still has stocks and cannot be removed",
	ChemicalCreateErr:       "create chemical failed",
	ChemicalQueryErr:        "query chemical failed",
	CompoundNotFound:        "no compound found",
	ConversionUnsupported:   "unit conversion unsupported",
	UnitNotFound:            "unit not found",
	StorageNotFound:         "storage not found",
	StorageHasChildrenErr:   "storage still has child locations",
	StorageCreateErr:        "create storage failed",
	StockNotFound:           "stock not found",
	StockCreateErr:          "create stock failed",
	StockQueryErr:           "query stock failed",
	ExtractionCreateErr:     "create extraction failed",
	ImportColumnsMissingErr: "required import columns are not mapped",
	ImportRowErr:            "import row rejected",
	ImportFileErr:           "import file unreadable",
	RPCHttpErr:              "upstream request failed",
	RPCHttpCodeErr:          "upstream returned unexpected status",
}

func (c Code) String() string {
	if s, ok := codeText[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int32(c))
}
