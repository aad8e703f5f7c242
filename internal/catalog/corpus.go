package catalog

import (
	"fmt"
	"sort"
	"strings"
)

const (
	// DefaultChunkSize and DefaultChunkOverlap keep each chunk large enough
	// to hold a whole product block with some neighboring context.
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Stats summarizes the corpus for the catalog endpoint and the health probe.
type Stats struct {
	TotalProducts int      `json:"total_products"`
	Categories    []string `json:"categories"`
	PriceMin      string   `json:"price_min"`
	PriceMax      string   `json:"price_max"`
	CapacityMin   string   `json:"capacity_min"`
	CapacityMax   string   `json:"capacity_max"`
}

// CorpusText renders the full catalog as plain text, one product block per
// entry. This is the document the retriever chunks and indexes.
func CorpusText() string {
	var b strings.Builder
	b.WriteString("Premium Refrigerator Collection\n")
	b.WriteString("Find the perfect cooling solution with our range of energy-efficient, feature-rich refrigerators.\n\n")
	for i, p := range products {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.Name)
		fmt.Fprintf(&b, "Model: %s | Category: %s\n", p.Model, p.Category)
		fmt.Fprintf(&b, "Price: %s\n", p.Price)
		fmt.Fprintf(&b, "Capacity: %s\n", p.Capacity)
		fmt.Fprintf(&b, "Key Features: %s\n", p.Features)
		fmt.Fprintf(&b, "Dimensions: %s\n", p.Dimensions)
		fmt.Fprintf(&b, "Warranty: %s\n", p.Warranty)
		fmt.Fprintf(&b, "Available Colors: %s\n", p.ColorOptions)
		fmt.Fprintf(&b, "Availability: %s\n", p.Stock)
		fmt.Fprintf(&b, "Ideal For: %s\n\n", p.IdealFor)
	}
	return b.String()
}

// Chunks splits the corpus text into overlapping windows for indexing.
// A non-positive size or overlap falls back to the defaults; overlap is
// clamped below size so the walk always advances.
func Chunks(size, overlap int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = DefaultChunkOverlap
	}
	if overlap >= size {
		overlap = size / 2
	}

	text := CorpusText()
	runes := []rune(text)
	var chunks []string
	for start := 0; start < len(runes); start += size - overlap {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// CatalogStats computes summary numbers over the product table.
func CatalogStats() Stats {
	categories := make([]string, 0, len(products))
	seen := map[string]bool{}
	minPrice, maxPrice := products[0], products[0]
	minCap, maxCap := products[0], products[0]
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			categories = append(categories, p.Category)
		}
		if p.PriceUSD < minPrice.PriceUSD {
			minPrice = p
		}
		if p.PriceUSD > maxPrice.PriceUSD {
			maxPrice = p
		}
		if p.CapacityL < minCap.CapacityL {
			minCap = p
		}
		if p.CapacityL > maxCap.CapacityL {
			maxCap = p
		}
	}
	sort.Strings(categories)
	return Stats{
		TotalProducts: len(products),
		Categories:    categories,
		PriceMin:      minPrice.Price,
		PriceMax:      maxPrice.Price,
		CapacityMin:   minCap.Capacity,
		CapacityMax:   maxCap.Capacity,
	}
}
