package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"fnr/internal/platform/config"
	"fnr/internal/platform/logger"
)

// CLISuite drives run() with in-memory writers.
type CLISuite struct {
	suite.Suite
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	logs   *bytes.Buffer
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	s.stdout = &bytes.Buffer{}
	s.stderr = &bytes.Buffer{}
	s.logs = &bytes.Buffer{}
}

func (s *CLISuite) run(cfg config.CLI, args ...string) int {
	return run(args, cfg, logger.New(s.logs, slog.LevelDebug), s.stdout, s.stderr)
}

func textConfig() config.CLI { return config.CLI{LogLevel: slog.LevelDebug, Output: config.OutputText} }

func (s *CLISuite) TestUsage() {
	s.Equal(exitUsage, s.run(textConfig()))
	s.Contains(s.stderr.String(), "Usage:")

	s.SetupTest()
	s.Equal(exitUsage, s.run(textConfig(), "frobnicate"))
	s.Contains(s.stderr.String(), "Unknown command: frobnicate")

	s.SetupTest()
	s.Equal(exitOK, s.run(textConfig(), "help"))
	s.Contains(s.stdout.String(), "validate")
}

func (s *CLISuite) TestValidate() {
	s.Run("all valid", func() {
		s.SetupTest()
		code := s.run(textConfig(), "validate", "01010000463", "24108534148")
		s.Equal(exitOK, code)
		s.Equal("01010000463\tvalid\n24108534148\tvalid\n", s.stdout.String())
	})

	s.Run("any invalid fails", func() {
		s.SetupTest()
		code := s.run(textConfig(), "validate", "01010000463", "01010100000")
		s.Equal(exitInvalid, code)
		s.Contains(s.stdout.String(), "01010100000\tinvalid")
		s.NotContains(s.logs.String(), "01010100000")
		s.Contains(s.logs.String(), "****0000")
	})

	s.Run("json output", func() {
		s.SetupTest()
		code := s.run(textConfig(), "validate", "-json", "0101010000")
		s.Equal(exitInvalid, code)

		var out []validateOutput
		s.Require().NoError(json.Unmarshal(s.stdout.Bytes(), &out))
		s.Equal([]validateOutput{{NationalID: "0101010000", Valid: false}}, out)
	})

	s.Run("requires arguments", func() {
		s.SetupTest()
		s.Equal(exitUsage, s.run(textConfig(), "validate"))
	})
}

func (s *CLISuite) TestInspect() {
	s.Run("prints derived fields", func() {
		s.SetupTest()
		code := s.run(textConfig(), "inspect", "15052050410")
		s.Equal(exitOK, code)

		out := s.stdout.String()
		s.Contains(out, "day:                15")
		s.Contains(out, "month:              05")
		s.Contains(out, "birth_year_2_digit: 20")
		s.Contains(out, "birth_year_4_digit: 2020")
		s.Contains(out, "sex:                female")
	})

	s.Run("json from config", func() {
		s.SetupTest()
		cfg := config.CLI{LogLevel: slog.LevelInfo, Output: config.OutputJSON}
		code := s.run(cfg, "inspect", "24108534148")
		s.Equal(exitOK, code)

		var out inspectOutput
		s.Require().NoError(json.Unmarshal(s.stdout.Bytes(), &out))
		s.Equal(inspectOutput{
			NationalID:      "24108534148",
			Redacted:        "*******4148",
			Day:             "24",
			Month:           "10",
			BirthYear2Digit: "85",
			BirthYear4Digit: "1985",
			Sex:             "male",
		}, out)
	})

	s.Run("invalid number", func() {
		s.SetupTest()
		code := s.run(textConfig(), "inspect", "01010100000")
		s.Equal(exitInvalid, code)
		s.Contains(s.stderr.String(), "invalid national ID format")
		s.Empty(s.stdout.String())
	})

	s.Run("century gap is an invariant fault", func() {
		s.SetupTest()
		code := s.run(textConfig(), "inspect", "01016080000")
		s.Equal(exitInvariant, code)
		s.Contains(s.stdout.String(), "birth century undetermined")
		s.Contains(s.logs.String(), "birth century undetermined")
		s.NotContains(s.logs.String(), "01016080000")
	})

	s.Run("requires exactly one number", func() {
		s.SetupTest()
		s.Equal(exitUsage, s.run(textConfig(), "inspect", "01010000463", "24108534148"))
	})
}

func TestRedactRaw(t *testing.T) {
	assert.Equal(t, "****", redactRaw(""))
	assert.Equal(t, "****", redactRaw("1234"))
	assert.Equal(t, "****0463", redactRaw("01010000463"))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	writeJSON(&buf, map[string]bool{"valid": true})
	require.JSONEq(t, `{"valid":true}`, buf.String())
	writeJSON(io.Discard, nil)
}
