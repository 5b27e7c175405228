package lookup

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/field"
	"github.com/rs/zerolog/log"
)

// CacheKey formats the on-disk cache file name for a given challenge
// vector, per §6's persisted-state contract: table_cache_dev_<base64(challenge_json)>.json.
func CacheKey(challenges []fext.Element) (string, error) {
	rows := make([][2]uint64, len(challenges))
	for i, c := range challenges {
		a0, a1 := c.Basis()
		rows[i] = [2]uint64{a0.Canonical(), a1.Canonical()}
	}
	encoded, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("lookup: encode challenge vector: %w", err)
	}
	return fmt.Sprintf("table_cache_dev_%s.json", base64.URLEncoding.EncodeToString(encoded)), nil
}

// LoadOrBuildTable reads romType's materialized table from the on-disk
// cache under dir, falling back to Table(romType, challenges) and writing
// the result back on a miss. A missing or corrupt cache file is treated
// as a silent miss: this is a performance optimisation only, and proofs
// never depend on its presence.
func LoadOrBuildTable(dir string, romType ROMType, challenges []fext.Element) (map[fext.Element]struct{}, error) {
	key, err := CacheKey(challenges)
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s", romType, key))

	if table, ok := loadCacheFile(path); ok {
		return table, nil
	}

	table := Table(romType, challenges)
	if err := writeCacheFile(path, table); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("lookup: failed to persist table cache, continuing without it")
	}
	return table, nil
}

type cacheEntry struct {
	Real [][2]uint64 `json:"real"`
}

func loadCacheFile(path string) (map[fext.Element]struct{}, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Debug().Err(err).Str("path", path).Msg("lookup: corrupt table cache, regenerating")
		return nil, false
	}
	table := make(map[fext.Element]struct{}, len(entry.Real))
	for _, pair := range entry.Real {
		table[fext.Element{field.New(pair[0]), field.New(pair[1])}] = struct{}{}
	}
	return table, true
}

func writeCacheFile(path string, table map[fext.Element]struct{}) error {
	entry := cacheEntry{Real: make([][2]uint64, 0, len(table))}
	for v := range table {
		a0, a1 := v.Basis()
		entry.Real = append(entry.Real, [2]uint64{a0.Canonical(), a1.Canonical()})
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
