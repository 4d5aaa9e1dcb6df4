package status

// Data contains all the information to display in status
type Data struct {
	// Header
	Version   string
	GitCommit string
	BuildTime string

	// Grammar
	Grammar GrammarInfo

	// Settings
	SettingsPath   string
	SettingsExists bool
	Settings       SettingsInfo

	// History, nil when no history file is configured
	History *HistoryInfo
}

// GrammarInfo describes the loaded command grammar
type GrammarInfo struct {
	Source   string // file path, empty for the embedded demo
	Prog     string
	Size     int64
	Valid    bool
	Errors   []string
	Commands int // every node below the root
	Options  int // option definitions across the tree
	Depth    int // longest command path
}

// Embedded reports whether the built-in demo grammar is in use
func (g GrammarInfo) Embedded() bool {
	return g.Source == ""
}

// SettingsInfo holds the effective shell settings
type SettingsInfo struct {
	LogLevel      string
	Prompt        string
	HistoryLimit  int
	MatchMiddle   bool
	IgnoreCase    bool
	MaxCandidates int
}

// HistoryInfo describes the readline history file
type HistoryInfo struct {
	Path    string
	Exists  bool
	Size    int64
	Entries int
}
