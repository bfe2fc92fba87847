package script

import (
	"fmt"

	"plp-bookstore/configs"
	"plp-bookstore/internal/queries"
)

// Params are the literals one battery run queries with.
type Params struct {
	Preset           string
	Genre            string
	PublishedAfter   int
	Author           string
	UpdateTitle      string
	UpdatePrice      float64
	DeleteTitle      string
	InStockAfter     int
	Page             queries.Page
	ExplainTitle     string
	ExplainVerbosity string
}

// ScriptParams are the literals of the standalone program.
func ScriptParams() Params {
	return Params{
		Preset:           configs.PresetScript,
		Genre:            "Programming",
		PublishedAfter:   2010,
		Author:           "Paulo Coelho",
		UpdateTitle:      "Clean Code",
		UpdatePrice:      40,
		DeleteTitle:      "The Alchemist",
		InStockAfter:     2010,
		Page:             queries.Page{Skip: 5, Limit: 5},
		ExplainTitle:     "Things Fall Apart",
		ExplainVerbosity: "executionStats",
	}
}

// ShellParams are the literals of the interactive shell statements.
func ShellParams() Params {
	p := ScriptParams()
	p.Preset = configs.PresetShell
	p.Genre = "Fiction"
	p.PublishedAfter = 2015
	p.Author = "Chinua Achebe"
	p.UpdateTitle = "Things Fall Apart"
	p.UpdatePrice = 10.99
	p.DeleteTitle = "Old Book Title"
	return p
}

// ParamsFromConfig picks the preset and applies the configured pagination and explain settings.
func ParamsFromConfig(cfg configs.Config) (Params, error) {
	p := ScriptParams()
	if cfg.Preset == configs.PresetShell {
		p = ShellParams()
	}

	sort, err := queries.ParseSort(cfg.PageSort)
	if err != nil {
		return Params{}, fmt.Errorf("PAGE_SORT: %w", err)
	}
	p.Page = queries.Page{Sort: sort, Skip: cfg.PageSkip, Limit: cfg.PageLimit}
	p.ExplainVerbosity = cfg.ExplainVerbosity
	return p, nil
}
