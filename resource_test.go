package svg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullResourceLoaderAlwaysNotFound(t *testing.T) {
	_, err := NullResourceLoader{}.FetchResource("anything")
	assert.True(t, errors.Is(err, ErrResourceNotFound))
}

func TestSandboxedFileResourceLoaderServesFilesUnderRoot(t *testing.T) {
	reads := map[string][]byte{"/root/a.png": []byte("data")}
	loader := NewSandboxedFileResourceLoader("/root", func(p string) ([]byte, error) {
		b, ok := reads[p]
		if !ok {
			return nil, errors.New("not found")
		}
		return b, nil
	})

	data, err := loader.FetchResource("a.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)
}

func TestSandboxedFileResourceLoaderRejectsEscape(t *testing.T) {
	loader := NewSandboxedFileResourceLoader("/root/assets", func(p string) ([]byte, error) {
		t.Fatalf("Read must not be called for a sandbox-escaping path, got %q", p)
		return nil, nil
	})

	_, err := loader.FetchResource("../../etc/passwd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSandboxViolation))
}

func TestSandboxedFileResourceLoaderMissingFileIsNotFound(t *testing.T) {
	loader := NewSandboxedFileResourceLoader("/root", func(p string) ([]byte, error) {
		return nil, errors.New("enoent")
	})

	_, err := loader.FetchResource("missing.png")
	assert.True(t, errors.Is(err, ErrResourceNotFound))
}

func TestDecodeBase64RoundTrip(t *testing.T) {
	out, err := DecodeBase64("aGVsbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
}

func TestDecodeBase64TolerantOfInteriorWhitespace(t *testing.T) {
	out, err := DecodeBase64("aGVs\nbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
}

func TestDecodeBase64RejectsInvalidCharacter(t *testing.T) {
	_, err := DecodeBase64("!!!!")
	assert.Error(t, err)
}

func TestDecodePercentDecodesEscapes(t *testing.T) {
	out, err := DecodePercent("100%25done")
	require.NoError(t, err)
	assert.Equal(t, "100%done", string(out))
}

func TestDecodePercentPassesThroughTrailingBarePercent(t *testing.T) {
	out, err := DecodePercent("almost%")
	require.NoError(t, err)
	assert.Equal(t, "almost%", string(out))
}

func TestDecodePercentPassesThroughShortHexTail(t *testing.T) {
	out, err := DecodePercent("abc%4")
	require.NoError(t, err)
	assert.Equal(t, "abc%4", string(out))
}
