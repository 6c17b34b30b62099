package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"textp2srt/internal/config"
	"textp2srt/internal/fileutil"
	"textp2srt/internal/testsupport"
	"textp2srt/internal/timeline"
	"textp2srt/internal/timelinedb"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, seed bool, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvTimelineDatabase, "")
	t.Setenv(config.EnvTrack, "")
	t.Chdir(t.TempDir())

	cfg := testsupport.NewConfig(t, opts...)
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, cfg)

	if seed {
		testsupport.SeedTimeline(t, cfg, testsupport.SampleSnapshot())
	}
	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), configPath, args...)
}

func runCLIContext(t *testing.T, ctx context.Context, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--log-level", "error"}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestCLISRTPlainWritesTimedEntries(t *testing.T) {
	env := setupCLITestEnv(t, true)
	input := testsupport.WriteManual(t, env.baseDir, "first", "second", "third")
	output := filepath.Join(env.baseDir, "out.srt")

	stdout, _, err := runCLI(t, env.configPath, "srt", input, output, "Subs")
	if err != nil {
		t.Fatalf("srt failed: %v", err)
	}
	requireContains(t, stdout, "[ok] wrote 3 entries -> "+output)
	if strings.Contains(stdout, "[warn]") {
		t.Fatalf("expected no warnings, got:\n%s", stdout)
	}

	want := "1\n00:00:00,000 --> 00:00:02,000\nfirst\n\n" +
		"2\n00:00:02,000 --> 00:00:05,000\nsecond\n\n" +
		"3\n00:00:05,000 --> 00:00:05,500\nthird\n\n"
	if got := testsupport.ReadText(t, output); got != want {
		t.Fatalf("unexpected srt:\n%s", got)
	}
}

func TestCLISRTPlainWarnsOnMismatch(t *testing.T) {
	env := setupCLITestEnv(t, true)
	input := testsupport.WriteManual(t, env.baseDir, "a", "b", "c", "d", "e")
	output := filepath.Join(env.baseDir, "out.srt")

	stdout, _, err := runCLI(t, env.configPath, "srt", input, output, "Subs")
	if err != nil {
		t.Fatalf("srt failed: %v", err)
	}
	requireContains(t, stdout,
		"[warn] blocks=5 clips=3 -> truncating to 3",
		"[ok] wrote 3 entries",
	)
}

func TestCLISRTMixedUsesStyledText(t *testing.T) {
	env := setupCLITestEnv(t, true)
	input := testsupport.WriteManual(t, env.baseDir, "first", "second", "third")
	output := filepath.Join(env.baseDir, "mixed.srt")

	stdout, _, err := runCLI(t, env.configPath, "srt", "--include-text-plus", input, output, "Subs")
	if err != nil {
		t.Fatalf("srt failed: %v", err)
	}
	requireContains(t, stdout,
		"[warn] empty subtitle entries: 1",
		"(manual_used=3/3 text_plus=2)",
		"[ok] wrote 5 entries",
	)

	got := testsupport.ReadText(t, output)
	requireContains(t, got,
		"1\n00:00:00,000 --> 00:00:02,000\nfirst\n\n",
		"2\n00:00:01,600 --> 00:00:01,920\nOpening\n\n",
		"3\n00:00:02,000 --> 00:00:05,000\nsecond\n\n",
		"5\n00:00:08,000 --> 00:00:10,000\n\n\n",
	)
}

func TestCLIMissingManualInputFails(t *testing.T) {
	env := setupCLITestEnv(t, true)
	missing := filepath.Join(env.baseDir, "nope.txt")

	_, _, err := runCLI(t, env.configPath, "srt", missing, filepath.Join(env.baseDir, "out.srt"), "Subs")
	if err == nil || !strings.Contains(err.Error(), "read manual input") {
		t.Fatalf("expected manual input error, got %v", err)
	}
}

func TestCLICountHonorsFilterFlags(t *testing.T) {
	env := setupCLITestEnv(t, true)

	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "default", args: []string{"count", "Subs"}, want: "3"},
		{name: "styled", args: []string{"count", "--include-text-plus", "Subs"}, want: "5"},
		{name: "no effects filter", args: []string{"count", "--no-ignore-effects", "Subs"}, want: "4"},
		{name: "extra ignore", args: []string{"count", "--extra-ignore", "three", "Subs"}, want: "2"},
		{name: "unknown track", args: []string{"count", "Nope"}, want: "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, env.configPath, tc.args...)
			if err != nil {
				t.Fatalf("count failed: %v", err)
			}
			if got := strings.TrimSpace(stdout); got != tc.want {
				t.Fatalf("expected %s, got %q", tc.want, got)
			}
		})
	}
}

func TestCLICountUsesConfiguredTrack(t *testing.T) {
	env := setupCLITestEnv(t, true, testsupport.WithTrack("Subs"))

	stdout, _, err := runCLI(t, env.configPath, "count")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "3" {
		t.Fatalf("expected 3, got %q", got)
	}
}

func TestCLIRequiresTrack(t *testing.T) {
	env := setupCLITestEnv(t, true)

	_, _, err := runCLI(t, env.configPath, "count")
	if err == nil || !strings.Contains(err.Error(), "track name required") {
		t.Fatalf("expected track error, got %v", err)
	}
}

func TestCLINoActiveTimeline(t *testing.T) {
	env := setupCLITestEnv(t, false)

	for _, args := range [][]string{{"count", "Subs"}, {"tracks"}, {"stats", "Subs"}} {
		stdout, _, err := runCLI(t, env.configPath, args...)
		if !errors.Is(err, timeline.ErrNoTimeline) {
			t.Fatalf("%v: expected ErrNoTimeline, got %v", args, err)
		}
		var reported *reportedError
		if !errors.As(err, &reported) {
			t.Fatalf("%v: expected reported error, got %T", args, err)
		}
		requireContains(t, stdout, "[error] No active timeline")
	}
}

func TestCLIStoreOpenFailureLogsError(t *testing.T) {
	env := setupCLITestEnv(t, false)
	env.cfg.Timeline.Database = t.TempDir()
	env.cfg.Logging.Format = "json"
	env.cfg.Logging.File = filepath.Join(env.baseDir, "textp2srt.log")
	writeTestConfig(t, env.configPath, env.cfg)

	_, _, err := runCLI(t, env.configPath, "count", "Subs")
	if err == nil || !strings.Contains(err.Error(), "open timeline store") {
		t.Fatalf("expected store open error, got %v", err)
	}
	logs := testsupport.ReadText(t, env.cfg.Logging.File)
	requireContains(t, logs, `"event_type":"store_open"`, `"error_hint":"check timeline.database or run timeline import"`)
}

func TestCLITrackArgumentIsExact(t *testing.T) {
	env := setupCLITestEnv(t, false)
	snap := testsupport.SampleSnapshot()
	snap.Tracks = append(snap.Tracks, timeline.SnapshotTrack{
		Name:  " Padded ",
		Items: []timeline.SnapshotItem{{Start: 0, End: 50, Name: "one"}},
	})
	testsupport.SeedTimeline(t, env.cfg, snap)

	stdout, _, err := runCLI(t, env.configPath, "count", " Padded ")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "1" {
		t.Fatalf("expected 1 element on padded track, got %q", got)
	}

	stdout, _, err = runCLI(t, env.configPath, "count", "Padded")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if got := strings.TrimSpace(stdout); got != "0" {
		t.Fatalf("expected trimmed name to miss the track, got %q", got)
	}
}

func TestCLITracks(t *testing.T) {
	env := setupCLITestEnv(t, true)

	stdout, _, err := runCLI(t, env.configPath, "tracks")
	if err != nil {
		t.Fatalf("tracks failed: %v", err)
	}
	if stdout != "Subs\nB-Roll\nSubs\n" {
		t.Fatalf("unexpected tracks output %q", stdout)
	}

	stdout, _, err = runCLI(t, env.configPath, "tracks", "--json")
	if err != nil {
		t.Fatalf("tracks --json failed: %v", err)
	}
	var names []string
	if err := json.Unmarshal([]byte(stdout), &names); err != nil {
		t.Fatalf("decode tracks json: %v", err)
	}
	if len(names) != 3 || names[1] != "B-Roll" {
		t.Fatalf("unexpected names %v", names)
	}
}

func TestCLIPreview(t *testing.T) {
	env := setupCLITestEnv(t, true)
	input := testsupport.WriteManual(t, env.baseDir, "first\nline two", "second", "third")

	stdout, _, err := runCLI(t, env.configPath, "preview", input, "Subs")
	if err != nil {
		t.Fatalf("preview failed: %v", err)
	}
	requireContains(t, stdout,
		"blocks=3 clips=3\n",
		"  1 00:00:00,000 -> 00:00:02,000 (2.00s) | first / line two || Text one\n",
		"  3 00:00:05,000 -> 00:00:05,500 (0.50s) | third || Text three\n",
	)
	if strings.Contains(stdout, "mismatch") {
		t.Fatalf("expected no mismatch warning, got:\n%s", stdout)
	}

	short := testsupport.WriteText(t, filepath.Join(env.baseDir, "short.txt"), ">only\n")
	stdout, _, err = runCLI(t, env.configPath, "preview", "--table", short, "Subs")
	if err != nil {
		t.Fatalf("preview --table failed: %v", err)
	}
	requireContains(t, stdout, "blocks=1 clips=3", "only", "Text one", "[warn] mismatch counts (final SRT will truncate)")
}

func TestCLIDiagnose(t *testing.T) {
	env := setupCLITestEnv(t, true)
	input := testsupport.WriteManual(t, env.baseDir, "a", "b", "c", "d")

	stdout, _, err := runCLI(t, env.configPath, "diagnose", input, "Subs")
	if err != nil {
		t.Fatalf("diagnose failed: %v", err)
	}
	requireContains(t, stdout,
		"blocks=4 kept_clips=3 ignored=3\n",
		"[info] counts differ; first 10 kept:\n",
		"K 001 00:00:00,000 -> 00:00:02,000 2.00s | Text one\n",
		"[info] ignored sample (up to 10):\n",
		"I effect   Cross Dissolve 00:00:05,000 0.40s\n",
		"I text_plus Title Card 00:00:01,600 0.32s\n",
		"[hint] More blocks than clips",
	)

	stdout, _, err = runCLI(t, env.configPath, "diagnose", "--all", "--no-ignore-effects", input, "Subs")
	if err != nil {
		t.Fatalf("diagnose --all failed: %v", err)
	}
	requireContains(t, stdout,
		"blocks=4 kept_clips=4 ignored=2\n",
		"K 003 00:00:05,000 -> 00:00:05,400 0.40s | Cross Dissolve\n",
		"I text_plus 00:00:08,000 -> 00:00:10,000 2.00s | Title Card\n",
	)
	if strings.Contains(stdout, "[hint]") {
		t.Fatalf("expected no hint for balanced counts, got:\n%s", stdout)
	}
}

func TestCLIStats(t *testing.T) {
	env := setupCLITestEnv(t, true)

	stdout, _, err := runCLI(t, env.configPath, "stats", "Subs")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	requireContains(t, stdout,
		"[stats] track='Subs' raw_items=6\n",
		"[stats] kept_text_clips=3  ignored_effect=1  ignored_text_plus=2\n",
		"[stats] total_text_plus_raw=2  effect_name_hits_raw=1\n",
		"[tail kept] last 3:\n",
		"  K 00:00:05,000 -> 00:00:05,500 | Text three\n",
		"  I effect   00:00:05,000 -> 00:00:05,400 0.40s | Cross Dissolve\n",
	)
}

func TestCLIApplyWritesStyledText(t *testing.T) {
	env := setupCLITestEnv(t, true)
	input := testsupport.WriteManual(t, env.baseDir, "Alpha", "Beta", "Gamma")

	stdout, _, err := runCLI(t, env.configPath, "apply", input, "Subs")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	requireContains(t, stdout,
		"[warn] blocks=3 text_plus=2 -> applying 2",
		"[ok] applied 2/2 blocks to Text+ clips",
	)

	store := testsupport.MustOpenStore(t, env.cfg)
	snap, err := store.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	var texts []string
	for _, track := range snap.Tracks {
		for _, item := range track.Items {
			if item.Styled != nil {
				texts = append(texts, item.Styled.Text)
			}
		}
	}
	if len(texts) != 2 || texts[0] != "Alpha" || texts[1] != "Beta" {
		t.Fatalf("unexpected styled texts %v", texts)
	}
}

func TestCLIApplyWithoutStyledClips(t *testing.T) {
	env := setupCLITestEnv(t, true)
	input := testsupport.WriteManual(t, env.baseDir, "Alpha")

	stdout, _, err := runCLI(t, env.configPath, "apply", input, "B-Roll")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	requireContains(t, stdout, "[warn] no Text+ clips found")
}

func TestCLITimelineImportShowExport(t *testing.T) {
	env := setupCLITestEnv(t, false)
	source := filepath.Join(env.baseDir, "episode.json")
	if err := timeline.SaveSnapshot(source, testsupport.SampleSnapshot()); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	stdout, _, err := runCLI(t, env.configPath, "timeline", "import", source)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	requireContains(t, stdout, `[ok] imported timeline "Episode 1"`)

	stdout, _, err = runCLI(t, env.configPath, "timeline", "show", "--json")
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	var summaries []timelinedb.Summary
	if err := json.Unmarshal([]byte(stdout), &summaries); err != nil {
		t.Fatalf("decode show json: %v", err)
	}
	if len(summaries) != 1 || !summaries[0].Current || summaries[0].Items != 8 {
		t.Fatalf("unexpected summaries %+v", summaries)
	}

	stdout, _, err = runCLI(t, env.configPath, "timeline", "show")
	if err != nil {
		t.Fatalf("show table failed: %v", err)
	}
	requireContains(t, stdout, "Episode 1", "yes")

	exported := filepath.Join(env.baseDir, "export.yaml")
	if _, _, err := runCLI(t, env.configPath, "timeline", "export", exported); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	snap, err := timeline.LoadSnapshot(exported)
	if err != nil {
		t.Fatalf("load exported: %v", err)
	}
	if snap.Name != "Episode 1" || snap.FrameRate != testsupport.SampleFrameRate {
		t.Fatalf("unexpected exported snapshot %+v", snap)
	}

	if _, _, err := runCLI(t, env.configPath, "timeline", "use", "Missing"); err == nil {
		t.Fatal("expected error for unknown timeline")
	}
}

func TestCLIWatchAppendsAfterPriming(t *testing.T) {
	env := setupCLITestEnv(t, false, testsupport.WithClipboardScript("first", "second"))
	output := filepath.Join(env.baseDir, "manual.txt")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	stdout, _, err := runCLIContext(t, ctx, env.configPath, "watch", output)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	requireContains(t, stdout,
		"[watch] clipboard -> "+output,
		"[prime] initial clipboard (not added): first",
		"[add] second",
		"[watch] stopped",
	)
	if got := testsupport.ReadText(t, output); got != ">second\n" {
		t.Fatalf("unexpected manual file %q", got)
	}
}

func TestCLIWatchRejectsLockedOutput(t *testing.T) {
	env := setupCLITestEnv(t, false, testsupport.WithClipboardScript("x"))
	output := filepath.Join(env.baseDir, "manual.txt")

	holder, err := fileutil.OpenAppender(output)
	if err != nil {
		t.Fatalf("open appender: %v", err)
	}
	defer holder.Close()

	_, _, err = runCLI(t, env.configPath, "watch", output)
	if !errors.Is(err, fileutil.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestCLIWatchRejectsUnknownEncoding(t *testing.T) {
	env := setupCLITestEnv(t, false, testsupport.WithClipboardScript("x"))

	_, _, err := runCLI(t, env.configPath, "watch", "--encoding", "klingon", filepath.Join(env.baseDir, "m.txt"))
	if err == nil || !strings.Contains(err.Error(), "unsupported clipboard encoding") {
		t.Fatalf("expected encoding error, got %v", err)
	}
}

func TestCLIConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t, false)
	target := filepath.Join(env.baseDir, "generated", "config.toml")

	stdout, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	requireContains(t, stdout, "Wrote sample configuration to "+target)

	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error when config exists")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite failed: %v", err)
	}

	env.cfg.Clipboard.Command = []string{"sh"}
	writeTestConfig(t, env.configPath, env.cfg)
	stdout, _, err = runCLI(t, env.configPath, "config", "validate")
	if err != nil {
		t.Fatalf("config validate failed: %v\n%s", err, stdout)
	}
	requireContains(t, stdout, "Config path: "+env.configPath, "[ok] Timeline database directory", "Configuration valid")
}
