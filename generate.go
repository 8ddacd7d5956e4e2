package rapidbase64

//go:generate go run ./cmd/b64probe -goarch amd64 -kernels AVX2 -o zcompiled_amd64.go
//go:generate go run ./cmd/b64probe -goarch arm64 -kernels NEON64 -o zcompiled_arm64.go
