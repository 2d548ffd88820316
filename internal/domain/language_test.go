package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		code    string
		want    Language
		wantErr bool
	}{
		{"en", LanguageEnglish, false},
		{"ja", LanguageJapanese, false},
		{"", LanguageEnglish, false},
		{"fr", "", true},
		{"EN", "", true},
	}

	for _, tt := range tests {
		got, err := ParseLanguage(tt.code)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidLanguage, "code %q", tt.code)
			continue
		}
		assert.NoError(t, err, "code %q", tt.code)
		assert.Equal(t, tt.want, got)
	}
}
