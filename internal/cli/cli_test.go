// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/vicas-tui/internal/config"
	"github.com/jeranaias/vicas-tui/internal/repository"
	"github.com/jeranaias/vicas-tui/internal/ui/styles"
	"github.com/jeranaias/vicas-tui/internal/vi"
)

// =============================================================================
// HELPERS
// =============================================================================

func sampleDocument() *vi.Document {
	return &vi.Document{
		LastUpdated: "Atualizado em maio de 2024",
		VI: vi.Dictionary{
			"71-43-2": {VRQ: vi.Float(0.03), VI: vi.Float(5), TapWater: vi.Float(0.46)},
			"50-29-3": {VI: vi.Float(0)},
		},
	}
}

// captureOutput points the stdout and stderr seams at buffers.
func captureOutput(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	out, errOut = &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := stdout, stderr
	stdout, stderr = out, errOut
	t.Cleanup(func() {
		stdout, stderr = prevOut, prevErr
	})
	return out, errOut
}

// stubClipboard records clipboard writes.
func stubClipboard(t *testing.T, fail error) *[]string {
	t.Helper()
	var writes []string
	prev := clipboardWrite
	clipboardWrite = func(text string) error {
		if fail != nil {
			return fail
		}
		writes = append(writes, text)
		return nil
	}
	t.Cleanup(func() { clipboardWrite = prev })
	return &writes
}

type stubRepo struct {
	doc   *vi.Document
	err   error
	loads int
}

func (r *stubRepo) Load(ctx context.Context) (*vi.Document, error) {
	r.loads++
	return r.doc, r.err
}

func (r *stubRepo) Record(ctx context.Context, cas string) (vi.Record, error) {
	rec, ok := r.doc.Lookup(cas)
	if !ok {
		return vi.Record{}, repository.ErrNotFound
	}
	return rec, nil
}

func (r *stubRepo) Describe() string { return "stub" }

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		bools    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"show"},
			wantSub: "show",
		},
		{
			name:    "flag with value",
			args:    []string{"get", "--column", "9"},
			wantSub: "get",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("column") != "9" {
					t.Errorf("Flag(column) = %q, want %q", p.Flag("column"), "9")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"--addr=:9000"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("addr") != ":9000" {
					t.Errorf("Flag(addr) = %q, want %q", p.Flag("addr"), ":9000")
				}
			},
		},
		{
			name:    "declared bool keeps the next positional",
			args:    []string{"--copy", "50-00-0"},
			bools:   []string{"copy"},
			wantSub: "50-00-0",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("copy") {
					t.Error("BoolFlag(copy) should be true")
				}
				if p.PositionalCount() != 1 {
					t.Errorf("PositionalCount() = %d, want 1", p.PositionalCount())
				}
			},
		},
		{
			name:    "bool with explicit value",
			args:    []string{"--watch=não"},
			bools:   []string{"watch"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("watch") {
					t.Error("BoolFlag(watch) should be false")
				}
				if !p.HasFlag("watch") {
					t.Error("HasFlag(watch) should be true")
				}
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"--", "-x", "50-00-0"},
			wantSub: "-x",
			validate: func(t *testing.T, p *ArgParser) {
				got := p.PositionalFrom(0)
				if len(got) != 2 || got[1] != "50-00-0" {
					t.Errorf("PositionalFrom(0) = %v", got)
				}
			},
		},
		{
			name:    "short flag alias",
			args:    []string{"-c", "tapWater"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				if p.FlagAny("column", "c") != "tapWater" {
					t.Errorf("FlagAny(column, c) = %q", p.FlagAny("column", "c"))
				}
			},
		},
		{
			name:    "trailing undeclared flag is bool",
			args:    []string{"init", "--force"},
			wantSub: "init",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("force") {
					t.Error("BoolFlag(force) should be true")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.bools...)
			if p.Subcommand() != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", p.Subcommand(), tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_Defaults(t *testing.T) {
	p := NewArgParser([]string{"--rate-limit", "abc", "--n", "5"})

	if got := p.FlagIntOrDefault("rate-limit", 60); got != 60 {
		t.Errorf("FlagIntOrDefault(rate-limit) = %d, want 60", got)
	}
	if got := p.FlagIntOrDefault("n", 1); got != 5 {
		t.Errorf("FlagIntOrDefault(n) = %d, want 5", got)
	}
	if got := p.FlagOrDefault("addr", "127.0.0.1:8787"); got != "127.0.0.1:8787" {
		t.Errorf("FlagOrDefault(addr) = %q", got)
	}
	if p.Positional(5) != "" {
		t.Error("Positional out of range should be empty")
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"SIM", true, false},
		{"on", true, false},
		{"não", false, false},
		{"0", false, false},
		{"talvez", false, true},
	}
	for _, tt := range tests {
		got, err := ParseBoolString(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBoolString(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseBoolString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// =============================================================================
// COMMAND PARSING TESTS (cli.go)
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
		check   func(*testing.T, Args)
	}{
		{name: "no args opens the tui", argv: nil, wantCmd: CmdTUI},
		{name: "help flag", argv: []string{"-h"}, wantCmd: CmdHelp},
		{name: "version flag", argv: []string{"--version"}, wantCmd: CmdVersion},
		{
			name:    "lookup with json",
			argv:    []string{"lookup", "50-00-0", "--json"},
			wantCmd: CmdLookup,
			check: func(t *testing.T, a Args) {
				assert.True(t, a.JSON)
				assert.Equal(t, []string{"50-00-0"}, a.Raw)
			},
		},
		{
			name:    "bare CAS is a lookup",
			argv:    []string{"50-00-0", "71-43-2"},
			wantCmd: CmdLookup,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, []string{"50-00-0", "71-43-2"}, a.Raw)
				assert.Empty(t, a.Subcommand)
			},
		},
		{
			name:    "global endpoint before the command",
			argv:    []string{"--endpoint", "http://vi.local:9000", "repl"},
			wantCmd: CmdRepl,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, "http://vi.local:9000", a.Endpoint)
			},
		},
		{
			name:    "source with equals",
			argv:    []string{"--source=file", "serve", "--watch", "-v"},
			wantCmd: CmdServe,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, "file", a.Source)
				assert.True(t, a.Verbose)
				assert.Equal(t, []string{"--watch"}, a.Raw)
			},
		},
		{
			name:    "leading command flag belongs to the tui",
			argv:    []string{"--file", "vi.json"},
			wantCmd: CmdTUI,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, []string{"--file", "vi.json"}, a.Raw)
			},
		},
		{
			name:    "config subcommand",
			argv:    []string{"config", "set", "ui.theme", "dark"},
			wantCmd: CmdConfig,
			check: func(t *testing.T, a Args) {
				assert.Equal(t, "set", a.Subcommand)
			},
		},
		{name: "convert", argv: []string{"convert", "a.json", "b.db"}, wantCmd: CmdConvert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			assert.Equal(t, tt.wantCmd, cmd, "command %s", cmd)
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestSourceConfig(t *testing.T) {
	cfg := config.Default()

	src := SourceConfig(cfg, Args{}, nil)
	assert.Equal(t, repository.KindHTTP, src.Kind)

	src = SourceConfig(cfg, Args{Endpoint: "https://vi.example.com"}, nil)
	assert.Equal(t, repository.KindHTTP, src.Kind)
	assert.Equal(t, "https://vi.example.com", src.Endpoint)

	src = SourceConfig(cfg, Args{}, NewArgParser([]string{"--file", "vi.json"}))
	assert.Equal(t, repository.KindFile, src.Kind)
	assert.Equal(t, "vi.json", src.File)

	src = SourceConfig(cfg, Args{Source: "file"}, NewArgParser([]string{"--sqlite", "vi.db"}))
	assert.Equal(t, repository.KindSQLite, src.Kind)
	assert.Equal(t, "vi.db", src.SQLite)

	// The loaded configuration is never modified.
	assert.Equal(t, repository.KindHTTP, cfg.Source.Kind)
}

func TestHandleVersion_JSON(t *testing.T) {
	out, _ := captureOutput(t)

	require.NoError(t, HandleVersion(Args{JSON: true}))

	var resp struct {
		Success bool        `json:"success"`
		Command string      `json:"command"`
		Data    VersionInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "version", resp.Command)
	assert.Equal(t, Version, resp.Data.Version)
}

// =============================================================================
// ERROR TESTS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("boom"), ExitGeneralError},
		{"validation", NewValidationError("CAS", "", "is required"), ExitUsageError},
		{"config", fmt.Errorf("invalid config: %w", config.ValidateErrors{{Field: "ui.theme", Message: "bad"}}), ExitConfigError},
		{"timeout", &repository.FetchError{Type: repository.ErrTypeTimeout, Message: "slow"}, ExitTimeoutError},
		{"not found", fmt.Errorf("lookup: %w", repository.ErrNotFound), ExitNotFoundError},
		{"unavailable", repository.ErrUnavailable, ExitNetworkError},
		{"upstream", &repository.FetchError{Type: repository.ErrTypeUpstream}, ExitNetworkError},
		{"invalid response", &repository.FetchError{Type: repository.ErrTypeInvalidResponse}, ExitGeneralError},
		{"wrapped command", NewCommandError("convert", "read", "x", errors.New("eof")), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestDisplayErrorJSON(t *testing.T) {
	out, _ := captureOutput(t)

	DisplayErrorJSON(&ValidationError{Field: "column", Value: "x", Reason: "unknown column"})

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "validation_error", got["error_type"])
	assert.Equal(t, "column", got["field"])
	assert.EqualValues(t, ExitUsageError, got["exit_code"])
}

// =============================================================================
// LOOKUP TESTS (lookup.go)
// =============================================================================

func TestRunLookup_Table(t *testing.T) {
	out, errOut := captureOutput(t)

	err := runLookup(sampleDocument(), "stub", "dark", LookupOptions{Input: "71-43-2 50-29-3 999-99-9"})
	require.NoError(t, err)

	text := out.String()
	for _, want := range []string{"71-43-2", "50-29-3", "999-99-9", "0,46", "0 *", "CETESB, 2021", "USEPA, MAIO 2024", vi.NoteSumLegend} {
		assert.Contains(t, text, want)
	}
	assert.Contains(t, errOut.String(), "999-99-9")
}

func TestRunLookup_Column(t *testing.T) {
	out, errOut := captureOutput(t)
	writes := stubClipboard(t, nil)

	err := runLookup(sampleDocument(), "stub", "dark", LookupOptions{
		Input:  "71-43-2  50-29-3",
		Column: "VI",
		Copy:   true,
	})
	require.NoError(t, err)

	// The double space is a gap row, and the sum marker is not exported.
	want := "5\r\n-\r\n0"
	assert.Equal(t, want+"\n", out.String())
	require.Len(t, *writes, 1)
	assert.Equal(t, want, (*writes)[0])
	assert.Contains(t, errOut.String(), "Coluna 'VI' copiada com sucesso.")
}

func TestRunLookup_ColumnErrors(t *testing.T) {
	captureOutput(t)

	err := runLookup(sampleDocument(), "stub", "dark", LookupOptions{Input: "71-43-2", Column: "nope"})
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	stubClipboard(t, errors.New("no display"))
	err = runLookup(sampleDocument(), "stub", "dark", LookupOptions{Input: "71-43-2", Column: "9", Copy: true})
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, "copy", cmdErr.Action)
}

func TestRunLookup_JSON(t *testing.T) {
	out, _ := captureOutput(t)

	err := runLookup(sampleDocument(), "file vi.json", "dark", LookupOptions{Input: "71-43-2 50-29-3 999-99-9", JSON: true})
	require.NoError(t, err)

	var resp struct {
		Success bool       `json:"success"`
		Data    LookupData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.True(t, resp.Success)

	data := resp.Data
	assert.Equal(t, "Atualizado em maio de 2024", data.LastUpdated)
	assert.Equal(t, "file vi.json", data.Source)
	assert.Equal(t, []string{"999-99-9"}, data.Missing)
	require.Len(t, data.Entries, 3)

	assert.Equal(t, map[string]float64{"VRQ": 0.03, "VI": 5, "tapWater": 0.46}, data.Entries[0].Values)
	// A zero value is a value, not an absence.
	assert.Equal(t, map[string]float64{"VI": 0}, data.Entries[1].Values)
	assert.False(t, data.Entries[2].Found)
	assert.Nil(t, data.Entries[2].Values)
}

func TestRunLookup_Markdown(t *testing.T) {
	out, _ := captureOutput(t)

	err := runLookup(sampleDocument(), "stub", "dark", LookupOptions{Input: "71-43-2 50-29-3", Markdown: true})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "| CAS |")
	assert.Contains(t, text, "Tap Water (USEPA, MAIO 2024)")
	assert.Contains(t, text, "| 71-43-2 | 0,03 |")
	assert.Contains(t, text, `0 \*`)
}

func TestRunLookup_NoCAS(t *testing.T) {
	captureOutput(t)

	err := runLookup(sampleDocument(), "stub", "dark", LookupOptions{Input: "CAS No."})
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "CAS", valErr.Field)
}

func TestHandleLookup_FileSourceAndStdin(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VICAS_HOME", dir)
	path := filepath.Join(dir, "vi.json")
	data, err := json.Marshal(sampleDocument())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	out, _ := captureOutput(t)
	prevIn := stdin
	stdin = strings.NewReader("71-43-2\n")
	t.Cleanup(func() { stdin = prevIn })

	err = HandleLookup(Args{Raw: []string{"--file", path, "--column", "tapWater"}})
	require.NoError(t, err)
	assert.Equal(t, "0,46\n", out.String())
}

func TestHandleLookup_CRLFStdin(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VICAS_HOME", dir)
	path := filepath.Join(dir, "vi.json")
	data, err := json.Marshal(sampleDocument())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	out, _ := captureOutput(t)
	prevIn := stdin
	stdin = strings.NewReader("71-43-2\r\n50-29-3\r\n71-43-2\r\n")
	t.Cleanup(func() { stdin = prevIn })

	err = HandleLookup(Args{Raw: []string{"--file", path, "--column", "VI"}})
	require.NoError(t, err)
	assert.Equal(t, "5\r\n0\r\n5\n", out.String())
}

func TestHandleLookup_MissingInput(t *testing.T) {
	captureOutput(t)
	prevIn := stdin
	stdin = strings.NewReader("   \n")
	t.Cleanup(func() { stdin = prevIn })

	err := HandleLookup(Args{})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// REPL TESTS (repl.go)
// =============================================================================

func TestReplSession_HandleLine(t *testing.T) {
	var out bytes.Buffer
	writes := stubClipboard(t, nil)
	repo := &stubRepo{doc: sampleDocument()}
	s := newReplSession(repo, repo.doc, styles.NewTheme("dark"), &out)
	ctx := context.Background()

	assert.False(t, s.handleLine(ctx, "   "))
	assert.Empty(t, out.String())

	assert.False(t, s.handleLine(ctx, ":coluna VI"))
	assert.Contains(t, out.String(), "Faça uma consulta")

	out.Reset()
	assert.False(t, s.handleLine(ctx, "71-43-2 123-45-6"))
	assert.Contains(t, out.String(), "71-43-2")
	assert.Contains(t, out.String(), "Sem valores para: 123-45-6")

	out.Reset()
	assert.False(t, s.handleLine(ctx, ":coluna 9"))
	assert.Equal(t, []string{"0,46\r\n-"}, *writes)
	assert.Contains(t, out.String(), "Coluna 'Tap Water' copiada com sucesso.")

	out.Reset()
	assert.False(t, s.handleLine(ctx, ":coluna"))
	assert.Contains(t, out.String(), "Uso: :coluna")

	assert.False(t, s.handleLine(ctx, ":ajuda"))
	assert.True(t, s.handleLine(ctx, ":sair"))
	assert.True(t, s.handleLine(ctx, "exit"))
}

func TestReplSession_Reload(t *testing.T) {
	var out bytes.Buffer
	repo := &stubRepo{doc: sampleDocument()}
	s := newReplSession(repo, repo.doc, styles.NewTheme("dark"), &out)

	updated := sampleDocument()
	updated.VI["50-00-0"] = vi.Record{VI: vi.Float(900)}
	repo.doc = updated

	s.handleLine(context.Background(), ":recarregar")
	assert.Equal(t, 1, repo.loads)
	assert.Contains(t, out.String(), "3 registros carregados.")
	assert.Equal(t, 3, s.doc.Len())

	// A failed reload keeps the current document.
	repo.err = repository.ErrUnavailable
	out.Reset()
	s.handleLine(context.Background(), ":reload")
	assert.Equal(t, 3, s.doc.Len())
	assert.NotEmpty(t, out.String())
}

// =============================================================================
// CONVERT TESTS (convert.go)
// =============================================================================

func TestConvertDocument_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	jsonIn := filepath.Join(dir, "vi.json")
	dbPath := filepath.Join(dir, "vi.db")
	jsonOut := filepath.Join(dir, "out", "vi.json")

	data, err := json.Marshal(sampleDocument())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(jsonIn, data, 0644))

	ctx := context.Background()
	n, err := convertDocument(ctx, jsonIn, dbPath)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = convertDocument(ctx, dbPath, jsonOut)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	doc, err := repository.ReadDocument(jsonOut)
	require.NoError(t, err)
	assert.Equal(t, "Atualizado em maio de 2024", doc.LastUpdated)

	rec, ok := doc.Lookup("71-43-2")
	require.True(t, ok)
	v, ok := rec.Value(vi.ColumnTapWater)
	require.True(t, ok)
	assert.Equal(t, 0.46, v)

	rec, ok = doc.Lookup("50-29-3")
	require.True(t, ok)
	v, ok = rec.Value(vi.ColumnVI)
	assert.True(t, ok)
	assert.Zero(t, v)
	_, ok = rec.Value(vi.ColumnVRQ)
	assert.False(t, ok)
}

func TestHandleConvert_MissingArgs(t *testing.T) {
	captureOutput(t)
	err := HandleConvert(Args{Raw: []string{"only.json"}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestIsSnapshotPath(t *testing.T) {
	assert.True(t, isSnapshotPath("vi.db"))
	assert.True(t, isSnapshotPath("/srv/VI.SQLITE3"))
	assert.False(t, isSnapshotPath("vi.json"))
	assert.False(t, isSnapshotPath("vi"))
}

// =============================================================================
// CONFIG TESTS (config.go)
// =============================================================================

func TestHandleConfig_SetGet(t *testing.T) {
	t.Setenv("VICAS_HOME", t.TempDir())
	out, _ := captureOutput(t)

	require.NoError(t, HandleConfig(Args{Raw: []string{"set", "ui.theme", "light"}}))
	assert.Contains(t, out.String(), "ui.theme = light")

	out.Reset()
	require.NoError(t, HandleConfig(Args{Raw: []string{"get", "ui.theme"}}))
	assert.Equal(t, "light\n", out.String())

	_, err := os.Stat(ConfigPath())
	assert.NoError(t, err)
}

func TestHandleConfig_SetRejectsInvalid(t *testing.T) {
	t.Setenv("VICAS_HOME", t.TempDir())
	captureOutput(t)

	err := HandleConfig(Args{Raw: []string{"set", "ui.theme", "neon"}})
	assert.Equal(t, ExitConfigError, GetExitCode(err))

	err = HandleConfig(Args{Raw: []string{"set", "ui.nope", "x"}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	// Nothing was written.
	_, statErr := os.Stat(ConfigPath())
	assert.True(t, os.IsNotExist(statErr))
}

func TestHandleConfig_Init(t *testing.T) {
	t.Setenv("VICAS_HOME", t.TempDir())
	captureOutput(t)

	require.NoError(t, HandleConfig(Args{Raw: []string{"init"}}))
	err := HandleConfig(Args{Raw: []string{"init"}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
	require.NoError(t, HandleConfig(Args{Raw: []string{"init", "--force"}}))

	cfg, err := config.LoadFromPath(ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, config.Default().UI.HighlightMS, cfg.UI.HighlightMS)
}

func TestHandleConfig_InitYAML(t *testing.T) {
	t.Setenv("VICAS_HOME", t.TempDir())
	captureOutput(t)

	require.NoError(t, HandleConfig(Args{Raw: []string{"init", "--yaml"}}))

	path, err := config.ConfigPathYAML()
	require.NoError(t, err)
	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().Source.Kind, cfg.Source.Kind)
	assert.Equal(t, config.Default().UI.ToastSeconds, cfg.UI.ToastSeconds)
}

func TestHandleConfig_ShowTOML(t *testing.T) {
	t.Setenv("VICAS_HOME", t.TempDir())
	out, _ := captureOutput(t)

	require.NoError(t, HandleConfig(Args{Raw: []string{"show", "--toml"}}))
	assert.Contains(t, out.String(), "[source]")
	assert.Contains(t, out.String(), "highlight_ms = 2500")
}

func TestHandleConfig_UnknownSubcommand(t *testing.T) {
	captureOutput(t)
	err := HandleConfig(Args{Raw: []string{"reset"}})
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// SERVE TESTS (serve.go)
// =============================================================================

func TestServerConfigFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Server.SQLite = "old.db"

	sc := serverConfig(cfg, NewArgParser([]string{"--file", "vi.json", "--no-watch", "--addr", ":9000", "--rate-limit", "0"}, "watch", "no-watch"))
	assert.Equal(t, "vi.json", sc.File)
	assert.Empty(t, sc.SQLite)
	assert.False(t, sc.Watch)
	assert.Equal(t, ":9000", sc.Addr)
	assert.Equal(t, 0, sc.RateLimit)

	sc = serverConfig(cfg, NewArgParser(nil))
	assert.Equal(t, cfg.Server, sc)
}
