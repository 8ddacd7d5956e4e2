package rapidbase64

import "golang.org/x/sys/cpu"

func detectFeatures() features {
	return features{NEON: cpu.ARM.HasNEON}
}
