package rapidbase64

import (
	"bytes"
	"crypto/rand"
	"encoding/base64"
	"errors"
	randv2 "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mnightingale/rapidbase64/fallback"
)

// runWithEachVariant runs fn once per variant that is both compiled in and
// supported by this CPU, restoring the previous path afterwards.
func runWithEachVariant(t *testing.T, fn func(t *testing.T)) {
	t.Helper()

	old := CurrentPath()
	defer func() { require.NoError(t, SetCurrentPath(old)) }()

	for _, v := range CompiledMask().And(RuntimeMask()).Variants() {
		require.NoError(t, SetCurrentPath(v))
		t.Run(v.String(), fn)
	}
}

func chacha(n int) []byte {
	raw := make([]byte, n)
	_, _ = randv2.NewChaCha8([32]byte(bytes.Repeat([]byte{0xBA, 0xAD, 0xF0, 0x0D}, 8))).Read(raw)
	return raw
}

func TestEncodeScenarios(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		altchars []byte
		expected string
	}{
		{"empty", "", nil, ""},
		{"one byte", "f", nil, "Zg=="},
		{"two bytes", "fo", nil, "Zm8="},
		{"no padding", "foobar", nil, "Zm9vYmFy"},
		{"url safe", "hello world !/?\n", []byte("-_"), "aGVsbG8gd29ybGQgIS8_Cg=="},
		{"standard altchars", "hello world !/?\n", []byte("+/"), "aGVsbG8gd29ybGQgIS8/Cg=="},
	}

	runWithEachVariant(t, func(t *testing.T) {
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				out, err := Encode([]byte(tc.input), tc.altchars)
				require.NoError(t, err)
				require.Equal(t, tc.expected, string(out))

				s, err := EncodeToString([]byte(tc.input), tc.altchars)
				require.NoError(t, err)
				require.Equal(t, tc.expected, s)
			})
		}
	})
}

func TestEncodeInvalidAlphabet(t *testing.T) {
	_, err := Encode([]byte("x"), []byte("-"))
	require.ErrorIs(t, err, ErrInvalidAlphabet)
	require.False(t, errors.Is(err, ErrMalformed))

	_, err = Decode([]byte("eA=="), []byte("-_."), false)
	require.ErrorIs(t, err, ErrInvalidAlphabet)
}

func TestDecodeScenarios(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		altchars []byte
		validate bool
		expected string
		err      error
	}{
		{"empty", "", nil, true, "", nil},
		{"empty lenient", "", nil, false, "", nil},
		{"one byte", "Zg==", nil, true, "f", nil},
		{"url safe", "aGVsbG8gd29ybGQgIS8_Cg==", []byte("-_"), true, "hello world !/?\n", nil},
		{"space lenient", "aGVsbG8gd29yb GQgIS8/Cg==", nil, false, "hello world !/?\n", nil},
		{"space validating", "aGVsbG8gd29yb GQgIS8/Cg==", nil, true, "", ErrInvalidCharacter},
		{"truncated lenient", "Zg", nil, false, "", ErrIncorrectPadding},
		{"truncated validating", "Zg=", nil, true, "", ErrIncorrectPadding},
		{"pad in the middle", "Zg==Zg==", nil, true, "", ErrInvalidCharacter},
	}

	runWithEachVariant(t, func(t *testing.T) {
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				out, err := Decode([]byte(tc.input), tc.altchars, tc.validate)
				if tc.err != nil {
					require.ErrorIs(t, err, tc.err)
					require.ErrorIs(t, err, ErrMalformed)

					var cie *CorruptInputError
					require.ErrorAs(t, err, &cie)
					return
				}
				require.NoError(t, err)
				require.Equal(t, tc.expected, string(out))
			})
		}
	})
}

func TestDecodeStringRejectsNonASCII(t *testing.T) {
	_, err := DecodeString("Zg==é", nil, false)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.False(t, errors.Is(err, ErrMalformed))

	out, err := DecodeString("Zm9vYmFy", nil, true)
	require.NoError(t, err)
	require.Equal(t, "foobar", string(out))
}

func TestRoundTrip(t *testing.T) {
	alts := [][]byte{nil, []byte("-_"), []byte("+,"), []byte("@&")}

	runWithEachVariant(t, func(t *testing.T) {
		for n := 0; n < 200; n++ {
			raw := make([]byte, n)
			_, err := rand.Read(raw)
			require.NoError(t, err)

			for _, alt := range alts {
				enc, err := Encode(raw, alt)
				require.NoError(t, err)

				strict, err := Decode(enc, alt, true)
				require.NoError(t, err)
				require.Equal(t, raw, strict)

				lenient, err := Decode(enc, alt, false)
				require.NoError(t, err)
				require.Equal(t, strict, lenient)
			}
		}
	})
}

func TestRoundTrip1MB(t *testing.T) {
	raw := make([]byte, 1024*1024)
	_, err := rand.Read(raw)
	require.NoError(t, err)

	runWithEachVariant(t, func(t *testing.T) {
		enc, err := Encode(raw, nil)
		require.NoError(t, err)
		require.Equal(t, base64.StdEncoding.EncodeToString(raw), string(enc))

		dec, err := Decode(enc, nil, true)
		require.NoError(t, err)
		require.Equal(t, raw, dec)

		lines := EncodeBytes(raw)
		dec, err = Decode(lines, nil, false)
		require.NoError(t, err)
		require.Equal(t, raw, dec)
	})
}

func TestCrossVariantEquivalence(t *testing.T) {
	raw := chacha(4096)

	var (
		encoded [][]byte
		mime    [][]byte
	)
	runWithEachVariant(t, func(t *testing.T) {
		enc, err := Encode(raw, []byte("-_"))
		require.NoError(t, err)
		encoded = append(encoded, enc)
		mime = append(mime, EncodeBytes(raw))
	})

	for i := 1; i < len(encoded); i++ {
		require.Equal(t, encoded[0], encoded[i])
		require.Equal(t, mime[0], mime[i])
	}
}

func TestMatchesFallback(t *testing.T) {
	inputs := [][]byte{
		[]byte(""),
		[]byte("Zg=="),
		[]byte("Zm9v=YmFy"),
		[]byte("Zm9=v"),
		[]byte("Zg=\n="),
		[]byte("Z=g=="),
		[]byte("Zg=a="),
		[]byte("Zg="),
		[]byte("Zg==Zg=="),
		[]byte("Zm9vYg==trailing"),
		[]byte("aGVsbG8gd29yb GQgIS8/Cg=="),
		[]byte("aGVsbG8gd29ybGQgIS8_Cg=="),
		[]byte("\r\n\t*=*"),
		[]byte("===="),
	}
	rng := randv2.New(randv2.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		b := make([]byte, rng.IntN(64))
		for j := range b {
			b[j] = "AZaz09+/-_= \n!"[rng.IntN(14)]
		}
		inputs = append(inputs, b)
	}

	runWithEachVariant(t, func(t *testing.T) {
		for _, in := range inputs {
			for _, validate := range []bool{false, true} {
				for _, alt := range [][]byte{nil, []byte("-_")} {
					got, err := Decode(in, alt, validate)
					want, wantErr := fallback.Decode(in, alt, validate)

					if wantErr != nil {
						require.Error(t, err, "input %q validate %v", in, validate)
						require.Equal(t, errors.Is(wantErr, ErrIncorrectPadding), errors.Is(err, ErrIncorrectPadding), "input %q validate %v: %v / %v", in, validate, err, wantErr)
						require.Equal(t, errors.Is(wantErr, ErrInvalidCharacter), errors.Is(err, ErrInvalidCharacter), "input %q validate %v: %v / %v", in, validate, err, wantErr)
						continue
					}
					require.NoError(t, err, "input %q validate %v", in, validate)
					require.Equal(t, want, got, "input %q validate %v", in, validate)
				}
			}
		}

		for n := 0; n < 100; n++ {
			raw := chacha(n)
			enc, err := Encode(raw, []byte("-_"))
			require.NoError(t, err)
			want, err := fallback.Encode(raw, []byte("-_"))
			require.NoError(t, err)
			require.Equal(t, want, enc)
			require.Equal(t, fallback.EncodeBytes(raw), EncodeBytes(raw))
		}
	})
}

func TestDecodeLenientMIMEMatchesFallback(t *testing.T) {
	raw := chacha(3 << 20)
	lines := EncodeBytes(raw)
	crlf := bytes.ReplaceAll(lines, []byte("\n"), []byte("\r\n"))

	for _, in := range [][]byte{lines, crlf} {
		want, err := fallback.Decode(in, nil, false)
		require.NoError(t, err)
		require.Equal(t, raw, want)
	}

	runWithEachVariant(t, func(t *testing.T) {
		for _, in := range [][]byte{lines, crlf} {
			got, err := Decode(in, nil, false)
			require.NoError(t, err)
			require.Equal(t, raw, got)
		}
	})
}

func TestPaddingBoundary(t *testing.T) {
	runWithEachVariant(t, func(t *testing.T) {
		for k := 0; k < 6; k++ {
			for r, pads := range []int{0, 2, 1} {
				enc, err := Encode(bytes.Repeat([]byte{0xA5}, 3*k+r), nil)
				require.NoError(t, err)
				require.Len(t, enc, EncodedLen(3*k+r))
				require.Equal(t, pads, len(enc)-len(bytes.TrimRight(enc, "=")))
			}
		}
	})
}

func TestEncodeBytes(t *testing.T) {
	require.Empty(t, EncodeBytes(nil))
	require.Equal(t, "Zm9vYmFy\n", string(EncodeBytes([]byte("foobar"))))

	raw := chacha(57 * 3)
	out := EncodeBytes(raw)
	require.Len(t, out, EncodedLinesLen(len(raw)))
	require.Equal(t, 3, bytes.Count(out, []byte("\n")))
}

func BenchmarkEncode(b *testing.B) {
	raw := chacha(1024 * 1024)
	b.SetBytes(int64(len(raw)))
	for b.Loop() {
		if _, err := Encode(raw, nil); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecode(b *testing.B) {
	enc, err := Encode(chacha(1024*1024), nil)
	require.NoError(b, err)

	b.SetBytes(int64(len(enc)))
	for b.Loop() {
		if _, err := Decode(enc, nil, true); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDecodeLenientMIME(b *testing.B) {
	lines := EncodeBytes(chacha(1024 * 1024))

	b.SetBytes(int64(len(lines)))
	for b.Loop() {
		if _, err := Decode(lines, nil, false); err != nil {
			b.Fatal(err)
		}
	}
}
