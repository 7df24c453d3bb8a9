package feed

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dealerhub/invsync/internal/domain"
)

// Scanner streams FeedRecords out of an extracted data file. A malformed line
// is skipped and counted; it never aborts the remaining sequence. The scanner
// is restartable by opening a new one on the same path.
type Scanner struct {
	file    *os.File
	sc      *bufio.Scanner
	rec     domain.FeedRecord
	line    int
	skipped int
}

// OpenFeed opens the data file for streaming.
func OpenFeed(path string) (*Scanner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &Scanner{file: f, sc: sc}, nil
}

// Next advances to the next well-formed record.
func (s *Scanner) Next() bool {
	for s.sc.Scan() {
		s.line++
		raw := strings.TrimRight(s.sc.Text(), "\r")
		if strings.TrimSpace(raw) == "" {
			continue
		}
		rec, err := ParseLine(raw)
		if err != nil {
			s.skipped++
			log.Warn().Err(err).Int("line", s.line).Msg("skipping malformed feed line")
			continue
		}
		s.rec = rec
		return true
	}
	return false
}

// Record returns the record produced by the last successful Next.
func (s *Scanner) Record() domain.FeedRecord { return s.rec }

// Line is the 1-based number of the last line read.
func (s *Scanner) Line() int { return s.line }

// Skipped counts malformed lines passed over so far.
func (s *Scanner) Skipped() int { return s.skipped }

func (s *Scanner) Err() error { return s.sc.Err() }

func (s *Scanner) Close() error { return s.file.Close() }

// ParseLine decodes one semicolon-separated feed line. The feed has no
// quoting or escaping, so a literal ";" inside a field cannot be told apart
// from a separator; such lines fail the arity check and are rejected.
func ParseLine(line string) (domain.FeedRecord, error) {
	fields := strings.Split(line, ";")
	if len(fields) != domain.FeedFieldCount {
		return domain.FeedRecord{}, fmt.Errorf("%w: got %d fields, want %d",
			domain.ErrRecordParse, len(fields), domain.FeedFieldCount)
	}

	rec := domain.FeedRecord{
		SKU:            domain.NormalizeSKU(fields[0]),
		UPC:            strings.TrimSpace(fields[1]),
		Title:          strings.TrimSpace(fields[2]),
		CategoryID:     strings.TrimSpace(fields[3]),
		ManufacturerID: strings.TrimSpace(fields[4]),
		RegularPrice:   strings.TrimSpace(fields[5]),
		VendorPrice:    strings.TrimSpace(fields[6]),
		Weight:         strings.TrimSpace(fields[7]),
		Quantity:       strings.TrimSpace(fields[8]),
		Tag:            strings.TrimSpace(fields[9]),
		Manufacturer:   strings.TrimSpace(fields[10]),
		VendorPartNum:  strings.TrimSpace(fields[11]),
		Status:         strings.TrimSpace(fields[12]),
		Description:    strings.TrimSpace(fields[13]),
		ImageFile:      domain.NormalizeImageFile(fields[14]),
	}
	if rec.SKU == "" {
		return domain.FeedRecord{}, fmt.Errorf("%w: empty sku", domain.ErrRecordParse)
	}
	return rec, nil
}
