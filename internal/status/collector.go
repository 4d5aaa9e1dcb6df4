// Package status provides status information collection and display for promptkit.
package status

import (
	"bufio"
	"fmt"
	"os"

	"github.com/NikitaCOEUR/promptkit/internal/cmdtree"
	"github.com/NikitaCOEUR/promptkit/internal/config"
	"github.com/NikitaCOEUR/promptkit/pkg/version"
)

// Params selects the files to report on
type Params struct {
	GrammarPath  string // empty means the embedded demo grammar
	SettingsPath string // empty means the global settings file
}

// CollectAll gathers grammar, settings and history information
func CollectAll(params Params) (*Data, error) {
	data := &Data{
		Version:   version.Version,
		GitCommit: version.GitCommit,
		BuildTime: version.BuildTime,
	}

	if err := collectSettings(data, params.SettingsPath); err != nil {
		return nil, err
	}

	grammar, err := collectGrammarInfo(data, params.GrammarPath)
	if err != nil {
		return nil, err
	}
	if grammar != nil {
		collectTreeInfo(data, grammar)
	}

	return data, nil
}

func collectSettings(data *Data, path string) error {
	if path == "" {
		p, err := config.GetGlobalConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get settings path: %w", err)
		}
		path = p
	}
	data.SettingsPath = path

	if _, err := os.Stat(path); err == nil {
		data.SettingsExists = true
	}

	s, err := config.LoadSettings(path)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	data.Settings = SettingsInfo{
		LogLevel:      s.LogLevel,
		Prompt:        s.Prompt,
		HistoryLimit:  s.HistoryLimit,
		MatchMiddle:   s.MatchMiddle,
		IgnoreCase:    s.IgnoreCase,
		MaxCandidates: s.MaxCandidates,
	}

	if s.HistoryFile != "" {
		data.History = collectHistoryInfo(s.HistoryFile)
	}
	return nil
}

// collectGrammarInfo validates the grammar file and returns it when it
// loads. An invalid grammar is recorded in data, not returned as an error.
func collectGrammarInfo(data *Data, path string) (*config.Grammar, error) {
	data.Grammar.Source = path

	if path == "" {
		g, err := config.DemoGrammar()
		if err != nil {
			return nil, fmt.Errorf("failed to load demo grammar: %w", err)
		}
		data.Grammar.Valid = true
		return g, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read grammar: %w", err)
	}
	data.Grammar.Size = info.Size()

	result, err := config.Validate(path)
	if err != nil {
		return nil, err
	}
	data.Grammar.Valid = result.Valid
	for _, e := range result.Errors {
		data.Grammar.Errors = append(data.Grammar.Errors, fmt.Sprintf("[%s] %s", e.Field, e.Message))
	}
	if !result.Valid {
		return nil, nil
	}

	return config.LoadGrammar(path)
}

func collectTreeInfo(data *Data, g *config.Grammar) {
	data.Grammar.Prog = g.Prog

	root, err := g.Build()
	if err != nil {
		data.Grammar.Valid = false
		data.Grammar.Errors = append(data.Grammar.Errors, err.Error())
		return
	}

	depth := map[*cmdtree.Node]int{root: 0}
	cmdtree.Walk(root, func(n *cmdtree.Node) bool {
		data.Grammar.Options += len(n.Options)
		if n == root {
			return true
		}
		d := depth[n.Parent()] + 1
		depth[n] = d
		data.Grammar.Commands++
		data.Grammar.Depth = max(data.Grammar.Depth, d)
		return true
	})
}

// collectHistoryInfo counts the non-empty lines of a readline history file
func collectHistoryInfo(path string) *HistoryInfo {
	info := &HistoryInfo{Path: path}

	file, err := os.Open(path)
	if err != nil {
		return info
	}
	defer func() { _ = file.Close() }()

	info.Exists = true
	if st, err := file.Stat(); err == nil {
		info.Size = st.Size()
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if scanner.Text() != "" {
			info.Entries++
		}
	}
	return info
}
