package utils

import (
	"testing"
	"time"

	"inotecloud/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvGetters(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty-two")
	t.Setenv("TEST_DURATION", "90s")
	t.Setenv("TEST_SECONDS", "120")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_EMPTY", "")
	t.Setenv("TEST_SLICE", " a, ,b ")

	assert.Equal(t, 42, GetEnvAsInt("TEST_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("TEST_BAD_INT", 1))
	assert.Equal(t, int64(42), GetEnvAsInt64("TEST_INT", 1))
	assert.Equal(t, uint64(42), GetEnvAsUint64("TEST_INT", 1))
	assert.Equal(t, 90*time.Second, GetEnvAsDuration("TEST_DURATION", time.Second))
	assert.Equal(t, 2*time.Minute, GetEnvAsDuration("TEST_SECONDS", time.Second))
	assert.Equal(t, time.Second, GetEnvAsDuration("TEST_UNSET_DURATION", time.Second))
	assert.True(t, GetEnvAsBool("TEST_BOOL", false))
	assert.Equal(t, "fallback", GetEnvAsString("TEST_EMPTY", "fallback"))
	assert.Equal(t, "42", GetEnvFirst("none", "TEST_EMPTY", "TEST_INT"))
	assert.Equal(t, "none", GetEnvFirst("none", "TEST_EMPTY"))
	assert.Equal(t, []string{"a", "b"}, GetEnvAsStringSlice("TEST_SLICE", nil))
	assert.Equal(t, []string{"x"}, GetEnvAsStringSlice("TEST_EMPTY", []string{"x"}))
}

func TestValidateStruct(t *testing.T) {
	valid := dto.RegisterRequest{Name: "Valid Name", Email: "valid@example.com", Password: "secret"}
	fields, err := ValidateStruct(valid)
	require.NoError(t, err)
	assert.Nil(t, fields)

	fields, err = ValidateStruct(dto.RegisterRequest{Name: "Ann", Email: "bad", Password: ""})
	require.NoError(t, err)
	require.Len(t, fields, 3)

	byField := map[string]string{}
	for _, f := range fields {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "name must be at least 5 characters long", byField["name"])
	assert.Equal(t, "Enter a valid email", byField["email"])
	assert.Equal(t, "password is required", byField["password"])
}

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name       string
		ua         string
		wantDevice string
		wantOS     string
	}{
		{name: "empty", ua: "", wantDevice: "Desktop", wantOS: "Unknown OS"},
		{
			name:       "iphone",
			ua:         "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1",
			wantDevice: "Mobile",
			wantOS:     "iOS",
		},
		{
			name:       "googlebot",
			ua:         "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
			wantDevice: "Bot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, os, device := ParseUserAgent(tt.ua)
			assert.Equal(t, tt.wantDevice, device)
			if tt.wantOS != "" {
				assert.Equal(t, tt.wantOS, os)
			}
		})
	}
}
