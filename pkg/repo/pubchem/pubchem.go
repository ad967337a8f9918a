package pubchem

import (
	// 外部依赖
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	resty "github.com/go-resty/resty/v2"

	// 内部引用
	config "github.com/labsuite/chemmanager/internal/config"
	code "github.com/labsuite/chemmanager/pkg/common/code"
	logger "github.com/labsuite/chemmanager/pkg/middleware/logger"
	redis "github.com/labsuite/chemmanager/pkg/middleware/redis"
	repo "github.com/labsuite/chemmanager/pkg/repo"
)

// PubChem reports MolecularWeight as a string in the property table.
type property struct {
	CID              int64  `json:"CID"`
	Title            string `json:"Title"`
	MolecularFormula string `json:"MolecularFormula"`
	MolecularWeight  string `json:"MolecularWeight"`
}

type PropertyResponse struct {
	PropertyTable struct {
		Properties []property `json:"Properties"`
	} `json:"PropertyTable"`
}

type pubchemImpl struct {
	client *resty.Client
}

func NewPubChemRepo() repo.PubChemRepo {
	conf := config.Global()

	return &pubchemImpl{
		client: resty.New().
			SetTimeout(time.Duration(conf.RPC.PubChem.Timeout)*time.Second).
			SetRetryCount(conf.Dynamic().PubChem.RetryCount).
			EnableTrace().
			SetBaseURL(conf.RPC.PubChem.Addr).
			SetHeader("Content-Type", "application/json"),
	}
}

func (p *pubchemImpl) GetCompoundByName(ctx context.Context, name string) (*repo.CompoundInfo, error) {
	if cached := p.fromCache(ctx, name); cached != nil {
		return cached, nil
	}

	propResp := &PropertyResponse{}
	res, err := p.client.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"name":  name,
			"props": "Title,MolecularFormula,MolecularWeight",
		}).
		SetResult(propResp).
		Get("/rest/pug/compound/name/{name}/property/{props}/JSON")
	if err != nil {
		logger.Errorf(ctx, "Failed to request properties from PubChem: %v", err)
		return nil, code.RPCHttpErr.WithErr(err)
	}

	// PubChem answers 404 for an unknown compound; treat it as a normal miss.
	if res.StatusCode() == http.StatusNotFound {
		return nil, code.CompoundNotFound
	}
	if res.StatusCode() != http.StatusOK {
		return nil, code.RPCHttpCodeErr.WithMsgf("PubChem property query failed: status %d", res.StatusCode())
	}

	if len(propResp.PropertyTable.Properties) == 0 {
		return nil, code.CompoundNotFound
	}

	propData := propResp.PropertyTable.Properties[0]

	weight, err := strconv.ParseFloat(propData.MolecularWeight, 64)
	if err != nil {
		logger.Warnf(ctx, "PubChem molecular weight unparsable: %q", propData.MolecularWeight)
	}

	info := &repo.CompoundInfo{
		CID:              propData.CID,
		Name:             propData.Title,
		MolecularFormula: propData.MolecularFormula,
		MolecularWeight:  weight,
	}
	p.toCache(ctx, name, info)
	return info, nil
}

func (p *pubchemImpl) DownloadImage(ctx context.Context, cid int64, dir string) (string, error) {
	dest := filepath.Join(dir, fmt.Sprintf("%d.png", cid))
	if _, err := os.Stat(dest); err == nil {
		// already downloaded, no freshness check
		return dest, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", code.RPCHttpErr.WithErr(err)
	}

	res, err := p.client.R().
		SetContext(ctx).
		SetPathParam("cid", strconv.FormatInt(cid, 10)).
		SetOutput(dest).
		Get("/rest/pug/compound/cid/{cid}/PNG")
	if err != nil {
		logger.Errorf(ctx, "Failed to download compound image: %v", err)
		return "", code.RPCHttpErr.WithErr(err)
	}
	if res.StatusCode() != http.StatusOK {
		return "", code.RPCHttpCodeErr.WithMsgf("PubChem image fetch failed: status %d", res.StatusCode())
	}
	return dest, nil
}

func cacheKey(name string) string {
	return "pubchem:name:" + strings.ToLower(strings.TrimSpace(name))
}

func (p *pubchemImpl) fromCache(ctx context.Context, name string) *repo.CompoundInfo {
	client := redis.GetClient()
	if client == nil {
		return nil
	}
	raw, err := client.Get(ctx, cacheKey(name)).Bytes()
	if err != nil {
		return nil
	}
	info := &repo.CompoundInfo{}
	if err := json.Unmarshal(raw, info); err != nil {
		return nil
	}
	return info
}

func (p *pubchemImpl) toCache(ctx context.Context, name string, info *repo.CompoundInfo) {
	client := redis.GetClient()
	if client == nil {
		return
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return
	}
	ttl := time.Duration(config.Global().Dynamic().PubChem.CacheTTL) * time.Second
	if err := client.Set(ctx, cacheKey(name), raw, ttl).Err(); err != nil {
		logger.Warnf(ctx, "cache compound %q err: %+v", name, err)
	}
}
