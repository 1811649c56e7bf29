package catalog

import "strings"

const imageSeparator = ","

// EncodeImages joins an image list into its persisted form, dropping blanks.
func EncodeImages(images []string) string {
	clean := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			clean = append(clean, img)
		}
	}
	return strings.Join(clean, imageSeparator)
}

// DecodeImages splits the persisted image list. The result is never nil.
func DecodeImages(raw string) []string {
	out := []string{}
	for _, img := range strings.Split(raw, imageSeparator) {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}
