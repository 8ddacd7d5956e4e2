//go:build !(386 || amd64 || arm || arm64)

package rapidbase64

func detectFeatures() features {
	return features{}
}
