package cms

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"finitefield.org/studio-web/internal/gallery"
)

type seedFile struct {
	Work              []rawRecord `yaml:"work"`
	Branded           []rawRecord `yaml:"branded"`
	Content           []rawRecord `yaml:"content"`
	About             *rawRecord  `yaml:"about"`
	Clients           []rawRecord `yaml:"clients"`
	SocialLinks       []rawRecord `yaml:"socialLinks"`
	PortfolioDownload *rawRecord  `yaml:"portfolioDownload"`
}

// LoadSeedFile reads a YAML dataset from disk. Sections missing from the file
// keep the built-in placeholder content.
func LoadSeedFile(path string) (*Dataset, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("cms: seed file path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cms: read seed file: %w", err)
	}
	ds, err := ParseSeed(data)
	if err != nil {
		return nil, fmt.Errorf("cms: parse seed file %s: %w", path, err)
	}
	return ds, nil
}

// ParseSeed decodes a YAML dataset.
func ParseSeed(data []byte) (*Dataset, error) {
	var seed seedFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		return nil, err
	}

	ds := DefaultDataset()
	sections := map[string][]rawRecord{
		DocWork:    seed.Work,
		DocBranded: seed.Branded,
		DocContent: seed.Content,
	}
	for docType, raws := range sections {
		if raws == nil {
			continue
		}
		records := make([]gallery.Record, 0, len(raws))
		for _, raw := range raws {
			if r, ok := mapGalleryRecord(raw, docType); ok {
				records = append(records, r)
			}
		}
		ds.Sections[docType] = records
	}
	if seed.About != nil {
		ds.About = mapAbout(*seed.About)
	}
	if seed.Clients != nil {
		ds.Clients = nil
		for _, raw := range seed.Clients {
			if cl, ok := mapClient(raw); ok {
				ds.Clients = append(ds.Clients, cl)
			}
		}
	}
	if seed.SocialLinks != nil {
		ds.SocialLinks = nil
		for _, raw := range seed.SocialLinks {
			if sl, ok := mapSocialLink(raw); ok {
				ds.SocialLinks = append(ds.SocialLinks, sl)
			}
		}
	}
	if seed.PortfolioDownload != nil {
		if pd, ok := mapPortfolioDownload(*seed.PortfolioDownload); ok {
			ds.Portfolio = &pd
		}
	}
	return ds, nil
}
