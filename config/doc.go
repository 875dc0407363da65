// Package config loads the haze command configuration.
//
// Sources, later ones overriding earlier ones:
//
//  1. Default() values, which reproduce the classic run: 4-door sections,
//     9-bit seeds, 3/8 open doorways, 10 breadth-first runs of up to
//     1,000,000 sections each.
//  2. An optional YAML file passed to Load.
//  3. Environment variables prefixed with HAZE_, e.g. HAZE_SPACE_MASK=0xFFF,
//     HAZE_EXPLORE_MODE=dfs, HAZE_EXPLORE_ORIGIN=1,2,3,4, HAZE_LOG_LEVEL=debug.
//
// Validate reports every problem at once; each one wraps ErrConfiguration.
// Space, ExplorerOptions, Origin and Logger turn a valid Config into the
// runtime objects used by packages section and explorer.
package config
