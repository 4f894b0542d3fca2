package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	nested := map[string]interface{}{
		"form": map[string]interface{}{
			"name_label": "이름",
			"privacy": map[string]interface{}{
				"label": "동의",
			},
		},
		"count": 123,
	}

	flat := make(map[string]string)
	flatten("", nested, flat)

	assert.Equal(t, "이름", flat["form.name_label"])
	assert.Equal(t, "동의", flat["form.privacy.label"])
	assert.Equal(t, "123", flat["count"])
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		args     map[string]interface{}
		expected string
	}{
		{"No placeholders", "안녕하세요", nil, "안녕하세요"},
		{"Single placeholder", "{name}님 안녕하세요", map[string]interface{}{"name": "홍길동"}, "홍길동님 안녕하세요"},
		{"Missing argument", "Hello {name}", map[string]interface{}{"other": "val"}, "Hello {name}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.args == nil {
				assert.Equal(t, tt.expected, format(tt.text))
				return
			}
			assert.Equal(t, tt.expected, format(tt.text, tt.args))
		})
	}
}

func TestLoadAndTranslate(t *testing.T) {
	require.NoError(t, Load())

	assert.Equal(t, "이름과 연락처는 필수입니다", Translate("ko", "api.required_fields"))
	assert.Equal(t, "Name and mobile number are required", Translate("en", "api.required_fields"))

	// Unknown language falls back to Korean
	assert.Equal(t, "이름을 입력해주세요", Translate("fr", "validation.name_required"))

	// Unknown key falls back to the key itself
	assert.Equal(t, "does.not.exist", Translate("ko", "does.not.exist"))
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	require.NoError(t, Load())

	mutex.RLock()
	defer mutex.RUnlock()

	ko := translations["ko"]
	en := translations["en"]
	require.NotEmpty(t, ko)
	require.NotEmpty(t, en)

	for key := range ko {
		_, ok := en[key]
		assert.True(t, ok, "en catalog is missing %s", key)
	}
	for key := range en {
		_, ok := ko[key]
		assert.True(t, ok, "ko catalog is missing %s", key)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ko", Normalize("ko-KR"))
	assert.Equal(t, "en", Normalize("en-US"))
	assert.Equal(t, "en", Normalize(" EN "))
	assert.Equal(t, "ko", Normalize("es"))
	assert.Equal(t, "ko", Normalize(""))
}

func TestGetLocale(t *testing.T) {
	assert.Equal(t, DefaultLang, GetLocale(context.Background()))
	assert.Equal(t, "en", GetLocale(WithLocale(context.Background(), "en")))
	assert.Equal(t, "YouTube", T(WithLocale(context.Background(), "en"), "contact.youtube"))
	assert.Equal(t, "유튜브", T(context.Background(), "contact.youtube"))
}
