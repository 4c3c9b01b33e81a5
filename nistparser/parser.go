package nistparser

import (
	"context"
	"fmt"
	"time"

	"github.com/stemerlini/fusion-plots/interfaces"
	"github.com/stemerlini/fusion-plots/logging"
	"github.com/stemerlini/fusion-plots/nistparser/entities"
	"github.com/viant/afs"
)

// Compile-time check to ensure NistParser implements Parser interface
var _ interfaces.Parser = (*NistParser)(nil)

// NistParser implements the Parser interface
type NistParser struct {
	downloader *Downloader
	fs         afs.Service
}

// NewNistParser creates a parser fetching remote data with the given downloader.
func NewNistParser(downloader *Downloader) *NistParser {
	if downloader == nil {
		downloader = NewDownloader(5 * time.Minute)
	}
	return &NistParser{
		downloader: downloader,
		fs:         afs.New(),
	}
}

// FetchTable downloads url and parses it as a line stream. Each call
// returns a new table; on a transport failure no table is returned.
func (p *NistParser) FetchTable(ctx context.Context, url string) (*entities.NuclideTable, error) {
	lines, err := p.downloader.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	table, err := ParseLines(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}
	return table, nil
}

// ReadRawFile opens location (a local path or any afs URL) and parses it as a
// text dump, keeping every value as text.
func (p *NistParser) ReadRawFile(ctx context.Context, location string) (*entities.RawTable, []InconsistentRecordWarning, error) {
	reader, err := p.fs.OpenURL(ctx, location)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", location, err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			logging.Warn("Failed to close NIST data file", "location", location, "error", err)
		}
	}()

	raw, warnings, err := ParseRecords(reader)
	if err != nil {
		return nil, warnings, fmt.Errorf("failed to parse %s: %w", location, err)
	}
	return raw, warnings, nil
}

// ReadFile is ReadRawFile followed by numeric coercion.
func (p *NistParser) ReadFile(ctx context.Context, location string) (*entities.NuclideTable, []InconsistentRecordWarning, error) {
	raw, warnings, err := p.ReadRawFile(ctx, location)
	if err != nil {
		return nil, warnings, err
	}
	table, err := ToNuclideTable(raw)
	if err != nil {
		return nil, warnings, fmt.Errorf("failed to convert %s: %w", location, err)
	}
	return table, warnings, nil
}

// Load reads every source that is set. When both are set the remote records
// come first, followed by the file records.
func (p *NistParser) Load(ctx context.Context, source interfaces.Source) (*entities.NuclideTable, int, error) {
	if source.URL == "" && source.File == "" {
		return nil, 0, fmt.Errorf("no NIST source configured")
	}

	table := entities.NewNuclideTable()
	warningCount := 0

	if source.URL != "" {
		remote, err := p.FetchTable(ctx, source.URL)
		if err != nil {
			return nil, 0, err
		}
		table.Append(remote)
	}

	if source.File != "" {
		local, warnings, err := p.ReadFile(ctx, source.File)
		warningCount = len(warnings)
		if err != nil {
			return nil, warningCount, err
		}
		table.Append(local)
	}

	logging.Info("NIST data loaded",
		"url", source.URL,
		"file", source.File,
		"records", table.Len(),
		"warnings", warningCount)

	return table, warningCount, nil
}
