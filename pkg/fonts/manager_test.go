package fonts_test

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/sina-salahshour/homer/internal/platform"
	"github.com/sina-salahshour/homer/pkg/fonts"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Font Manager", func() {
	var (
		remote   *fakeRemote
		plat     *mockPlatform
		selector *mockSelector
		manager  *fonts.Manager
		paths    platform.Paths
		archiveA []byte
		archiveB []byte
		ctx      context.Context
	)

	loadStatus := func() *fonts.StatusRecord {
		record, err := fonts.NewStatusStore(paths.StatusFile).Load()
		Expect(err).NotTo(HaveOccurred())
		return record
	}

	BeforeEach(func() {
		var err error
		archiveA, err = createTestZip(testFont{name: "ANerdFont-Regular.ttf", content: "font A"})
		Expect(err).NotTo(HaveOccurred())
		archiveB, err = createTestZip(
			testFont{name: "BNerdFont-Regular.ttf", content: "font B"},
			testFont{name: "BNerdFont-Bold.otf", content: "font B bold"},
		)
		Expect(err).NotTo(HaveOccurred())

		remote = newFakeRemote("3.2.1", map[string][]byte{"A": archiveA, "B": archiveB}, "A", "B")
		DeferCleanup(remote.Close)

		plat = &mockPlatform{root: GinkgoT().TempDir()}
		selector = &mockSelector{choose: []string{"A", "B"}}
		manager = fonts.NewManager(remote.Config(), plat, selector, io.Discard)

		paths, err = plat.Resolve("NerdFonts")
		Expect(err).NotTo(HaveOccurred())

		ctx = context.Background()
	})

	Describe("Installing fonts", func() {
		It("should download and install every selected font", func() {
			Expect(manager.Run(ctx)).To(Succeed())

			Expect(remote.Hits("A")).To(Equal(1))
			Expect(remote.Hits("B")).To(Equal(1))

			record := loadStatus()
			Expect(record.Downloaded()).To(ConsistOf("A", "B"))
			Expect(record.Installed()).To(ConsistOf("A", "B"))

			Expect(paths.ArchivePath("A", "zip")).To(BeARegularFile())
			Expect(paths.ArchivePath("B", "zip")).To(BeARegularFile())

			content, err := os.ReadFile(filepath.Join(paths.InstallPath("A"), "ANerdFont-Regular.ttf"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(content)).To(Equal("font A"))
			Expect(filepath.Join(paths.InstallPath("B"), "BNerdFont-Bold.otf")).To(BeARegularFile())

			Expect(plat.cacheUpdates).To(Equal(1))
		})

		It("should offer every catalog entry with nothing preselected on a first run", func() {
			Expect(manager.Run(ctx)).To(Succeed())

			Expect(selector.options).To(Equal([]string{"A", "B"}))
			Expect(selector.preselected).To(BeEmpty())
		})

		It("should not download fonts that are already downloaded", func() {
			Expect(paths.Ensure()).To(Succeed())
			Expect(os.WriteFile(paths.ArchivePath("A", "zip"), archiveA, 0644)).To(Succeed())
			store := fonts.NewStatusStore(paths.StatusFile)
			Expect(store.MarkDownloaded(fonts.NewStatusRecord(), "A")).To(Succeed())

			Expect(manager.Run(ctx)).To(Succeed())

			Expect(remote.Hits("A")).To(Equal(0))
			Expect(remote.Hits("B")).To(Equal(1))

			record := loadStatus()
			Expect(record.Downloaded()).To(ConsistOf("A", "B"))
			Expect(record.Installed()).To(ConsistOf("A", "B"))
			Expect(filepath.Join(paths.InstallPath("A"), "ANerdFont-Regular.ttf")).To(BeARegularFile())
		})

		It("should neither download nor extract again on a second run", func() {
			Expect(manager.Run(ctx)).To(Succeed())

			marker := filepath.Join(paths.InstallPath("A"), "ANerdFont-Regular.ttf")
			Expect(os.WriteFile(marker, []byte("edited by user"), 0644)).To(Succeed())

			Expect(manager.Run(ctx)).To(Succeed())

			Expect(remote.Hits("A")).To(Equal(1))
			Expect(remote.Hits("B")).To(Equal(1))
			Expect(selector.preselected).To(Equal([]int{0, 1}))

			content, err := os.ReadFile(marker)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(content)).To(Equal("edited by user"))
			Expect(plat.cacheUpdates).To(Equal(1))
		})

		It("should abort before any extraction when a download fails", func() {
			remote.FailMidStream("A")

			err := manager.Run(ctx)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(`"A"`))

			record := loadStatus()
			Expect(record.IsDownloaded("A")).To(BeFalse())
			Expect(record.Installed()).To(BeEmpty())
			Expect(remote.Hits("B")).To(Equal(0))
			Expect(paths.InstallPath("A")).NotTo(BeAnExistingFile())
			Expect(plat.cacheUpdates).To(Equal(0))
		})

		It("should resume after a failed run", func() {
			remote.FailMidStream("B")
			Expect(manager.Run(ctx)).NotTo(Succeed())
			Expect(loadStatus().Downloaded()).To(Equal([]string{"A"}))

			remote.Recover("B")

			Expect(manager.Run(ctx)).To(Succeed())
			Expect(remote.Hits("A")).To(Equal(1))
			Expect(remote.Hits("B")).To(Equal(2))
			Expect(loadStatus().Installed()).To(ConsistOf("A", "B"))
		})

		It("should install only the selected subset", func() {
			selector.choose = []string{"B"}

			Expect(manager.Run(ctx)).To(Succeed())

			Expect(remote.Hits("A")).To(Equal(0))
			Expect(loadStatus().Installed()).To(Equal([]string{"B"}))
			Expect(paths.InstallPath("A")).NotTo(BeAnExistingFile())
		})

		It("should do nothing when the selection is empty", func() {
			selector.choose = nil

			Expect(manager.Run(ctx)).To(Succeed())
			Expect(remote.Hits("A")).To(Equal(0))
			Expect(plat.cacheUpdates).To(Equal(0))
		})

		It("should abort when the selection is cancelled", func() {
			selector.err = fonts.ErrSelectionCancelled

			err := manager.Run(ctx)
			Expect(err).To(MatchError(fonts.ErrSelectionCancelled))
			Expect(remote.Hits("A")).To(Equal(0))
		})

		It("should abort when the release descriptor is unavailable", func() {
			cfg := remote.Config()
			cfg.Font.RootURL = remote.URL() + "/missing.yml"
			manager = fonts.NewManager(cfg, plat, selector, io.Discard)

			err := manager.Run(ctx)
			Expect(err).To(MatchError(fonts.ErrUnexpectedStatus))
			Expect(selector.calls).To(Equal(0))
		})

		It("should fail the install pass when a cached archive has vanished", func() {
			Expect(paths.Ensure()).To(Succeed())
			store := fonts.NewStatusStore(paths.StatusFile)
			Expect(store.MarkDownloaded(fonts.NewStatusRecord(), "A")).To(Succeed())
			selector.choose = []string{"A"}

			err := manager.Run(ctx)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring(`installing font "A"`))
			Expect(loadStatus().Installed()).To(BeEmpty())
		})
	})

	Describe("Listing fonts", func() {
		It("should report recorded progress per catalog entry", func() {
			selector.choose = []string{"A"}
			Expect(manager.Run(ctx)).To(Succeed())

			states, err := manager.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(states).To(HaveLen(2))

			Expect(states[0].Font.FolderName).To(Equal("A"))
			Expect(states[0].Downloaded).To(BeTrue())
			Expect(states[0].Installed).To(BeTrue())
			Expect(states[1].Font.FolderName).To(Equal("B"))
			Expect(states[1].Installed).To(BeFalse())
		})
	})

	Describe("Uninstalling fonts", func() {
		BeforeEach(func() {
			Expect(manager.Run(ctx)).To(Succeed())
		})

		It("should remove the font directory and keep the cached archive", func() {
			Expect(manager.Uninstall("A")).To(Succeed())

			Expect(paths.InstallPath("A")).NotTo(BeAnExistingFile())
			Expect(paths.ArchivePath("A", "zip")).To(BeARegularFile())

			record := loadStatus()
			Expect(record.Installed()).To(Equal([]string{"B"}))
			Expect(record.Downloaded()).To(ConsistOf("A", "B"))
		})

		It("should reinstall from the cache without downloading", func() {
			Expect(manager.Uninstall("A")).To(Succeed())
			Expect(manager.Run(ctx)).To(Succeed())

			Expect(remote.Hits("A")).To(Equal(1))
			Expect(filepath.Join(paths.InstallPath("A"), "ANerdFont-Regular.ttf")).To(BeARegularFile())
		})

		It("should fail for fonts that are not installed", func() {
			err := manager.Uninstall("NonExistentFont")
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("not installed"))
		})
	})
})
