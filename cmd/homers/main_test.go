package main

import "testing"

func TestConfigFlagIsRequired(t *testing.T) {
	flag := rootCmd.Flags().Lookup("config")
	if flag == nil {
		t.Fatal("expected a --config flag to be registered")
	}
	if flag.Shorthand != "c" {
		t.Errorf("expected shorthand -c, got %q", flag.Shorthand)
	}
	if rootCmd.Flags().ShorthandLookup("c") == nil {
		t.Error("expected -c to resolve to the config flag")
	}
}

func TestVersionIsSet(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("expected rootCmd.Version to be set")
	}
}

func TestVerbosityFlagsAreRegistered(t *testing.T) {
	verbose := rootCmd.Flags().Lookup("verbose")
	if verbose == nil {
		t.Fatal("expected a --verbose flag to be registered")
	}
	if verbose.Shorthand != "v" {
		t.Errorf("expected shorthand -v, got %q", verbose.Shorthand)
	}

	quiet := rootCmd.Flags().Lookup("quiet")
	if quiet == nil {
		t.Fatal("expected a --quiet flag to be registered")
	}
	if quiet.Shorthand != "q" {
		t.Errorf("expected shorthand -q, got %q", quiet.Shorthand)
	}
}

func TestAdjustedLogLevel(t *testing.T) {
	cases := []struct {
		name    string
		base    string
		verbose int
		quiet   int
		want    string
	}{
		{"no adjustment", "info", 0, 0, "info"},
		{"single verbose steps down", "info", 1, 0, "debug"},
		{"repeated verbose clamps at trace", "info", 5, 0, "trace"},
		{"single quiet steps up", "info", 0, 1, "warn"},
		{"repeated quiet clamps at fatal", "error", 0, 5, "fatal"},
		{"verbose and quiet cancel out", "warn", 1, 1, "warn"},
		{"unknown base defaults to info", "bogus", 1, 0, "debug"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := adjustedLogLevel(tc.base, tc.verbose, tc.quiet)
			if got != tc.want {
				t.Errorf("adjustedLogLevel(%q, %d, %d) = %q, want %q", tc.base, tc.verbose, tc.quiet, got, tc.want)
			}
		})
	}
}
