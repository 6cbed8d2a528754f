// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/jeranaias/vicas-tui/internal/config"
	"github.com/jeranaias/vicas-tui/internal/repository"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLookup
	CmdRepl
	CmdServe
	CmdConvert
	CmdConfig
	CmdVersion
	CmdHelp
)

func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdLookup:
		return "lookup"
	case CmdRepl:
		return "repl"
	case CmdServe:
		return "serve"
	case CmdConvert:
		return "convert"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Verbose  bool
	JSON     bool
	Source   string // overrides source.kind
	Endpoint string // overrides source.endpoint (implies http)

	// Subcommand is the first positional after the command, if any.
	Subcommand string

	// Raw holds the command's arguments with global flags removed.
	Raw []string
}

const usageText = `vicas - Valores de Intervenção por número CAS

Consulta os valores de intervenção (VI) da CETESB e os valores de
referência da USEPA para solo e água subterrânea.

Usage:
  vicas                         Abre a interface de terminal (padrão)
  vicas tui                     Idem
  vicas lookup <CAS...>         Consulta um ou mais CAS
  vicas repl                    Consulta interativa linha a linha
  vicas serve                   Serve o documento de referência via HTTP
  vicas convert <in> <out>      Converte JSON <-> snapshot SQLite
  vicas config [subcommand]     Configuração
  vicas version                 Versão
  vicas help                    Esta ajuda

Lookup:
  vicas lookup 50-00-0 71-43-2
  pbpaste | vicas lookup              Lê os CAS da entrada padrão
    -c, --column <K>                  Exporta só a coluna K (chave ou 1-9)
    --copy                            Copia a coluna exportada
    --markdown                        Tabela em markdown
    --json                            Saída JSON

Serve:
  vicas serve --file vi.json --addr 127.0.0.1:8787 --watch
    --sqlite <path>                   Serve um snapshot SQLite
    --rate-limit <n>                  Requisições por minuto por cliente

Config:
  vicas config show [--json]        Mostra a configuração
  vicas config path                 Caminho do arquivo
  vicas config init [--force] [--yaml]
                                    Grava os padrões em config.toml (ou config.yaml)
  vicas config get <key>            Lê uma chave (ex.: ui.theme)
  vicas config set <key> <value>    Altera uma chave

Global flags:
  --source <http|file|sqlite>       Origem dos dados
  --endpoint <url>                  URL base do serviço (implica http)
  --file <path>                     Documento JSON local (implica file)
  --sqlite <path>                   Snapshot SQLite local (implica sqlite)
  -v, --verbose                     Mais detalhes no log
  --json                            Saída JSON

Environment:
  VICAS_HOME, VICAS_ENDPOINT, VICAS_SOURCE, VICAS_FILE, VICAS_ADDR,
  VICAS_THEME, VICAS_LOG_FILE, VICAS_VERBOSE

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Fprintf(stdout, usageText, Version)
}

// VersionInfo is the --json payload of `vicas version`.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// HandleVersion prints version information.
func HandleVersion(args Args) error {
	info := VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if args.JSON {
		return NewJSONResponse("version", info).Print()
	}

	fmt.Fprintf(stdout, "vicas version %s\n", info.Version)
	fmt.Fprintf(stdout, "  Git commit: %s\n", info.GitCommit)
	fmt.Fprintf(stdout, "  Build date: %s\n", info.BuildDate)
	fmt.Fprintf(stdout, "  Go:         %s (%s)\n", info.GoVersion, info.Platform)
	return nil
}

// =============================================================================
// PARSING
// =============================================================================

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name) into a command and its
// arguments.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	// Leading flags (e.g. `vicas --file vi.json`) belong to the TUI.
	if strings.HasPrefix(remaining[0], "-") {
		switch remaining[0] {
		case "-h", "--help":
			return CmdHelp, parsed
		case "--version":
			return CmdVersion, parsed
		}
		parsed.Raw = remaining
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	parsed.Raw = remaining[1:]
	if len(parsed.Raw) > 0 && !strings.HasPrefix(parsed.Raw[0], "-") {
		parsed.Subcommand = parsed.Raw[0]
	}

	switch cmd {
	case "tui":
		return CmdTUI, parsed
	case "lookup", "l", "cas":
		return CmdLookup, parsed
	case "repl", "shell":
		return CmdRepl, parsed
	case "serve", "server":
		return CmdServe, parsed
	case "convert":
		return CmdConvert, parsed
	case "config":
		return CmdConfig, parsed
	case "version":
		return CmdVersion, parsed
	case "help":
		return CmdHelp, parsed
	default:
		// Bare CAS numbers are a lookup: `vicas 50-00-0`.
		parsed.Raw = remaining
		parsed.Subcommand = ""
		return CmdLookup, parsed
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsed Args

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-v", "--verbose":
			parsed.Verbose = true
			continue
		case "--json":
			parsed.JSON = true
			continue
		case "--source", "--endpoint":
			if i+1 < len(args) {
				i++
				parsed.setGlobal(arg, args[i])
			}
			continue
		}

		if name, value, ok := strings.Cut(arg, "="); ok && (name == "--source" || name == "--endpoint") {
			parsed.setGlobal(name, value)
			continue
		}
		remaining = append(remaining, arg)
	}

	return remaining, parsed
}

func (a *Args) setGlobal(name, value string) {
	switch name {
	case "--source":
		a.Source = value
	case "--endpoint":
		a.Endpoint = value
	}
}

// =============================================================================
// SOURCE SELECTION
// =============================================================================

// SourceConfig resolves the data source from the configuration, the global
// flags and the --file / --sqlite flags of the command, in that order of
// increasing precedence.
func SourceConfig(cfg *config.Config, args Args, p *ArgParser) config.SourceConfig {
	src := cfg.Source
	if args.Source != "" {
		src.Kind = args.Source
	}
	if args.Endpoint != "" {
		src.Kind = repository.KindHTTP
		src.Endpoint = args.Endpoint
	}
	if p != nil {
		if f := p.Flag("file"); f != "" {
			src.Kind = repository.KindFile
			src.File = f
		}
		if s := p.Flag("sqlite"); s != "" {
			src.Kind = repository.KindSQLite
			src.SQLite = s
		}
	}
	return src
}

// OpenRepository builds the repository for a command.
func OpenRepository(cfg *config.Config, args Args, p *ArgParser) (repository.Repository, error) {
	repo, err := repository.New(SourceConfig(cfg, args, p))
	if err != nil {
		return nil, &ValidationError{Field: "source", Reason: err.Error()}
	}
	return repo, nil
}

// closeRepository releases repositories that hold resources.
func closeRepository(repo repository.Repository) {
	if c, ok := repo.(interface{ Close() error }); ok {
		c.Close()
	}
}
