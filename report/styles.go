package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type styles struct {
	title        int
	header       int
	right        int
	date         int
	percent      int
	total        int
	totalPercent int
	good         int
	bad          int
}

func newStyles(file *excelize.File) (*styles, error) {
	percentFormat := "0.0%"
	dateFormat := "yyyy-mm-dd"
	totalFill := excelize.Fill{Type: "pattern", Color: []string{"85144B"}, Pattern: 1}
	totalBorder := []excelize.Border{{Type: "bottom", Color: "000000", Style: 6}}

	definitions := []*excelize.Style{
		{
			Font:      &excelize.Font{Bold: true, Size: 21},
			Alignment: &excelize.Alignment{Horizontal: "left"},
		},
		{
			Font:      &excelize.Font{Bold: true},
			Alignment: &excelize.Alignment{Horizontal: "right"},
			Border:    []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
		},
		{Alignment: &excelize.Alignment{Horizontal: "right"}},
		{
			CustomNumFmt: &dateFormat,
			Alignment:    &excelize.Alignment{Horizontal: "right"},
		},
		{
			CustomNumFmt: &percentFormat,
			Font:         &excelize.Font{Bold: true},
			Alignment:    &excelize.Alignment{Horizontal: "right"},
		},
		{
			Font:      &excelize.Font{Bold: true, Color: "FFDC00"},
			Fill:      totalFill,
			Border:    totalBorder,
			Alignment: &excelize.Alignment{Horizontal: "right"},
		},
		{
			CustomNumFmt: &percentFormat,
			Font:         &excelize.Font{Bold: true, Color: "FFDC00"},
			Fill:         totalFill,
			Border:       totalBorder,
			Alignment:    &excelize.Alignment{Horizontal: "right"},
		},
	}

	s := &styles{}
	targets := []*int{&s.title, &s.header, &s.right, &s.date, &s.percent, &s.total, &s.totalPercent}
	for i, definition := range definitions {
		id, err := file.NewStyle(definition)
		if err != nil {
			return nil, fmt.Errorf("create cell style: %w", err)
		}
		*targets[i] = id
	}

	good, err := file.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Color: "006100"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create highlight style: %w", err)
	}
	bad, err := file.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create highlight style: %w", err)
	}
	s.good, s.bad = good, bad

	return s, nil
}
