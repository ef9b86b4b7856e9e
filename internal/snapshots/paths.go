package snapshots

import (
	"path/filepath"

	"github.com/preston-bernstein/widgetbridge/internal/domain"
)

// stampLayout names capture files; lexical order is capture order.
const stampLayout = "20060102T150405.000Z"

const manifestName = "manifest.json"

// CapturePath builds the path of one captured payload.
func CapturePath(basePath string, ns domain.Namespace, stamp string) string {
	return filepath.Join(basePath, string(ns), stamp+".json")
}
