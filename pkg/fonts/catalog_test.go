package fonts_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/sina-salahshour/homer/pkg/fonts"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Catalog Client", func() {
	var (
		client *fonts.CatalogClient
		body   string
		status int
		server *httptest.Server
		ctx    context.Context
	)

	BeforeEach(func() {
		client = fonts.NewCatalogClient()
		status = http.StatusOK
		ctx = context.Background()
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			fmt.Fprint(w, body)
		}))
		DeferCleanup(server.Close)
	})

	Describe("fetching the catalog", func() {
		It("should decode camelCase remote fields", func() {
			body = `{"fonts": [{
				"unpatchedName": "Fira Code",
				"licenseId": "OFL-1.1",
				"RFN": true,
				"version": "6.2",
				"patchedName": "FiraCode Nerd Font",
				"folderName": "FiraCode",
				"imagePreviewFont": "FiraCode Nerd Font",
				"imagePreviewFontSource": "1",
				"caskName": "fira-code",
				"repoRelease": true,
				"isMonospaced": true,
				"description": "Ligatures",
				"unknownField": 42
			}, {"folderName": "Hack"}]}`

			catalog, err := client.FetchCatalog(ctx, server.URL)
			Expect(err).NotTo(HaveOccurred())
			Expect(catalog).To(HaveLen(2))

			Expect(catalog[0]).To(Equal(fonts.FontDescriptor{
				UnpatchedName:          "Fira Code",
				LicenseID:              "OFL-1.1",
				RFN:                    true,
				Version:                "6.2",
				PatchedName:            "FiraCode Nerd Font",
				FolderName:             "FiraCode",
				ImagePreviewFont:       "FiraCode Nerd Font",
				ImagePreviewFontSource: "1",
				CaskName:               "fira-code",
				RepoRelease:            true,
				IsMonospaced:           true,
				Description:            "Ligatures",
			}))
			Expect(catalog.FolderNames()).To(Equal([]string{"FiraCode", "Hack"}))
		})

		It("should fail on a malformed document", func() {
			body = `{"fonts": [`
			_, err := client.FetchCatalog(ctx, server.URL)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("decoding font catalog"))
		})

		It("should fail when a field has the wrong type", func() {
			body = `{"fonts": [{"folderName": 7}]}`
			_, err := client.FetchCatalog(ctx, server.URL)
			Expect(err).To(HaveOccurred())
		})

		It("should fail on a non-success status", func() {
			status = http.StatusNotFound
			body = "not found"
			_, err := client.FetchCatalog(ctx, server.URL)
			Expect(err).To(MatchError(fonts.ErrUnexpectedStatus))
		})

		It("should fail when the host is unreachable", func() {
			url := server.URL
			server.Close()
			_, err := client.FetchCatalog(ctx, url)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("fetching font catalog"))
		})
	})

	Describe("fetching release info", func() {
		It("should extract current_version from YAML", func() {
			body = "title: Nerd Fonts\ncurrent_version: 3.2.1\nnav:\n  - a\n"
			info, err := client.FetchReleaseInfo(ctx, server.URL)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.CurrentVersion).To(Equal("3.2.1"))
		})

		It("should strip a leading v", func() {
			body = "current_version: v3.0.0\n"
			info, err := client.FetchReleaseInfo(ctx, server.URL)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.CurrentVersion).To(Equal("3.0.0"))
		})

		It("should fail when current_version is missing", func() {
			body = "title: Nerd Fonts\n"
			_, err := client.FetchReleaseInfo(ctx, server.URL)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("current_version"))
		})

		It("should fail on malformed YAML", func() {
			body = "current_version: [3.0\n"
			_, err := client.FetchReleaseInfo(ctx, server.URL)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("decoding release info"))
		})
	})

	Describe("picking descriptors", func() {
		It("should keep catalog order and drop unknown names", func() {
			catalog := fonts.Catalog{{FolderName: "A"}, {FolderName: "B"}, {FolderName: "C"}}
			picked := catalog.Pick([]string{"C", "missing", "A"})
			Expect(picked.FolderNames()).To(Equal([]string{"A", "C"}))
		})
	})
})
