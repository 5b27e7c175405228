package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ceno-labs/zkvm-core/fext"
	"github.com/ceno-labs/zkvm-core/lookup"
)

var romTypesByName = map[string]lookup.ROMType{
	"u5": lookup.U5, "u8": lookup.U8, "u14": lookup.U14, "u16": lookup.U16,
	"and": lookup.And, "or": lookup.Or, "xor": lookup.Xor,
	"ltu": lookup.Ltu, "pow": lookup.Pow,
}

func parseROMType(name string) (lookup.ROMType, error) {
	t, ok := romTypesByName[name]
	if !ok {
		return 0, fmt.Errorf("zkcheck: unknown ROM table %q (want one of u5,u8,u14,u16,and,or,xor,ltu,pow)", name)
	}
	return t, nil
}

func newCacheCmd() *cobra.Command {
	var dir string

	cache := &cobra.Command{
		Use:   "cache",
		Short: "Maintain the on-disk ROM table cache (an optimisation only; proofs never depend on it)",
	}
	cache.PersistentFlags().StringVar(&dir, "dir", ".", "directory holding table_cache_dev_*.json files")

	build := &cobra.Command{
		Use:   "build <romtype>",
		Short: "Materialize and persist a ROM table under the challenge vector [1]",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			romType, err := parseROMType(args[0])
			if err != nil {
				return err
			}
			table, err := lookup.LoadOrBuildTable(dir, romType, []fext.Element{fext.One()})
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{"rom_type": romType, "dir": dir, "entries": len(table)}).Info("zkcheck: cache built")
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Remove every table_cache_dev_*.json file under --dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := os.ReadDir(dir)
			if err != nil {
				return fmt.Errorf("zkcheck: read cache dir: %w", err)
			}
			removed := 0
			for _, entry := range entries {
				if entry.IsDir() || !isTableCacheFile(entry.Name()) {
					continue
				}
				if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
					return fmt.Errorf("zkcheck: remove %s: %w", entry.Name(), err)
				}
				removed++
			}
			log.WithFields(log.Fields{"dir": dir, "removed": removed}).Info("zkcheck: cache cleared")
			return nil
		},
	}

	cache.AddCommand(build, clear)
	return cache
}

// isTableCacheFile reports whether name looks like one of this package's
// own cache files (lookup.LoadOrBuildTable names them
// "<ROMType>_table_cache_dev_<base64>.json"), so clear doesn't sweep up
// unrelated files under --dir.
func isTableCacheFile(name string) bool {
	return strings.Contains(name, "table_cache_dev_") && strings.HasSuffix(name, ".json")
}
