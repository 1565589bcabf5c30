package fonts

import (
	"net/http"
	"time"
)

// FontDescriptor is one catalog entry. FolderName is the identity used for
// archive names, status tracking and install directories.
type FontDescriptor struct {
	UnpatchedName          string `json:"unpatchedName"`
	LicenseID              string `json:"licenseId"`
	RFN                    bool   `json:"RFN"` // Reserved font name
	Version                string `json:"version"`
	PatchedName            string `json:"patchedName"`
	FolderName             string `json:"folderName"`
	ImagePreviewFont       string `json:"imagePreviewFont"`
	ImagePreviewFontSource string `json:"imagePreviewFontSource"`
	CaskName               string `json:"caskName"`
	RepoRelease            bool   `json:"repoRelease"`
	IsMonospaced           bool   `json:"isMonospaced"`
	Description            string `json:"description"`
}

// Catalog is one snapshot of the remote font list, in remote order.
type Catalog []FontDescriptor

// FolderNames returns the identifiers of every entry, in catalog order.
func (c Catalog) FolderNames() []string {
	names := make([]string, 0, len(c))
	for _, f := range c {
		names = append(names, f.FolderName)
	}
	return names
}

// Pick maps folder names back to descriptors. The result keeps catalog order;
// names that match nothing are dropped.
func (c Catalog) Pick(folderNames []string) Catalog {
	wanted := make(map[string]bool, len(folderNames))
	for _, name := range folderNames {
		wanted[name] = true
	}

	var picked Catalog
	for _, f := range c {
		if wanted[f.FolderName] {
			picked = append(picked, f)
		}
	}
	return picked
}

// ReleaseInfo is the upstream release the archives are downloaded from.
type ReleaseInfo struct {
	CurrentVersion string `yaml:"current_version"`
}

// Common HTTP client. No overall timeout: an archive download may run for minutes.
var defaultClient = &http.Client{
	Transport: &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	},
}
