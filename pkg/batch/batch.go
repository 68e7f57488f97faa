// Package batch loads whole directories of sitelog files, one station per
// file, and merges them into a per-station collection.
package batch

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/mholt/archiver/v3"

	"github.com/gnsslab/nrtsta/pkg/site"
)

// Result holds the outcome of one directory scan. Failed files never abort
// the batch, they are recorded here instead.
type Result struct {
	Sites  site.Sites
	Failed map[string]error // per input file
}

// Load reads all sitelogs in dir matching pattern (e.g. "*.log"). Archives
// with sitelog bundles (.zip, .tar.gz, .tgz) found in dir are unpacked into
// a temporary directory first. Collisions on the derived station ID are
// resolved by the newest "Date Prepared".
func Load(dir, pattern string) (*Result, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("sitelog dir: %w", err)
	}

	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	unpacked, cleanup, err := unpackArchives(dir, pattern)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	paths = append(paths, unpacked...)
	sort.Strings(paths)

	res := &Result{Failed: make(map[string]error)}
	perStation := make(map[string]*site.Site)

	for _, path := range paths {
		s, err := LoadFile(path)
		if err != nil {
			log.Printf("WARN: %s: %v", path, err)
			res.Failed[path] = err
			continue
		}
		for _, warn := range s.Warnings {
			log.Printf("WARN: %s: %v", path, warn)
		}

		id := s.StationID()
		if id == "" {
			res.Failed[path] = fmt.Errorf("no station ID derivable")
			continue
		}
		if prev, ok := perStation[id]; ok {
			// newest sitelog wins
			if !s.FormInfo.DatePrepared.After(prev.FormInfo.DatePrepared) {
				log.Printf("WARN: %s: older sitelog for station %s skipped", path, id)
				continue
			}
			log.Printf("WARN: station %s: replaced by newer sitelog %s", id, path)
		}
		perStation[id] = s
	}

	ids := make([]string, 0, len(perStation))
	for id := range perStation {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		res.Sites = append(res.Sites, perStation[id])
	}
	return res, nil
}

// LoadFile parses a single sitelog file including validation and equipment
// history cleaning. A missing file is fatal for this file.
func LoadFile(path string) (*site.Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := site.DecodeSitelog(bytes.NewReader(decodeText(data)))
	if err != nil {
		return nil, err
	}

	if err := s.ValidateAndClean(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	// Old sitelogs carry the nine character ID only in the filename.
	if s.Ident.NineCharacterID == "" {
		if id := nineCharIDByFilename(filepath.Base(path)); id != "" &&
			strings.HasPrefix(id, s.StationID()) {
			s.Ident.NineCharacterID = id
		}
	}

	return s, nil
}

// decodeText returns valid UTF-8: the input as is if it already is, with a
// Latin-1 reinterpretation as the fallback. Sitelogs predate UTF-8 and are
// declared as plain ASCII, in practice both encodings occur.
func decodeText(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	var b bytes.Buffer
	b.Grow(len(data) + len(data)/8)
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.Bytes()
}

// archiveExts are the sitelog bundle formats that are unpacked before a scan.
var archiveExts = []string{".zip", ".tar.gz", ".tgz"}

// unpackArchives extracts sitelog bundles from dir into a temp directory
// and returns the contained files matching pattern.
func unpackArchives(dir, pattern string) (paths []string, cleanup func(), err error) {
	cleanup = func() {}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, cleanup, err
	}

	var bundles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := strings.ToLower(e.Name())
		for _, ext := range archiveExts {
			if strings.HasSuffix(name, ext) {
				bundles = append(bundles, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	if len(bundles) == 0 {
		return nil, cleanup, nil
	}

	tmpDir, err := os.MkdirTemp("", "sitelogs")
	if err != nil {
		return nil, cleanup, err
	}
	cleanup = func() { os.RemoveAll(tmpDir) }

	for _, bundle := range bundles {
		if err := archiver.Unarchive(bundle, tmpDir); err != nil {
			log.Printf("WARN: could not unpack %s: %v", bundle, err)
		}
	}

	err = filepath.Walk(tmpDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if ok, _ := filepath.Match(pattern, filepath.Base(path)); ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}
	return paths, cleanup, nil
}

// stationNameRegex matches a nine character station name.
var stationNameRegex = regexp.MustCompile(`(?i)[A-Z0-9]{4}\d\d[A-Z]{3}`)

// nineCharIDByFilename extracts a nine character station name like
// "BRUX00BEL" from a sitelog filename.
func nineCharIDByFilename(filename string) string {
	if len(filename) < 9 {
		return ""
	}
	return strings.ToUpper(stationNameRegex.FindString(filename))
}
