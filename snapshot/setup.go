package snapshot

import (
	"github.com/amonks/xtask/internal/command"
	"github.com/amonks/xtask/internal/config"
)

// New assembles a suite over the built-in catalog for the repository at
// repoPath. Config masks run after the default rules.
func New(repoPath string, cfg *config.Config, executor command.Executor, reporter Reporter) (*Suite, error) {
	rules := DefaultRules()
	for _, mask := range cfg.Snapshot.Masks {
		rule, err := NewRule(mask.Name, mask.Pattern, mask.Replacement)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}

	dir := cfg.SnapshotDir(repoPath)
	return &Suite{
		Catalog: Default(),
		Runner: &Runner{
			Executor: executor,
			Tool:     cfg.Snapshot.Tool,
			Dir:      dir,
			Target:   cfg.Snapshot.Target,
			Env:      fixtureEnv(cfg.Snapshot),
		},
		Normalizer: NewNormalizer(repoPath, rules...),
		Goldens:    &GoldenStore{Root: dir},
		Reporter:   reporter,
	}, nil
}

func fixtureEnv(cfg config.Snapshot) []string {
	env := make([]string, 0, len(cfg.Env)+1)
	if cfg.LogLevel != "" {
		env = append(env, "DEFMT_LOG="+cfg.LogLevel)
	}
	return append(env, cfg.Env...)
}
