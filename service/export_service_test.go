package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo-tienda/models"
)

func exportFixture(t *testing.T, itemCount int, templateID string) (*ExportService, CatalogSnapshot) {
	t.Helper()
	template, ok := models.TemplateByID(templateID)
	require.True(t, ok)

	svc := NewExportService(NewPageComposer(NewImageCache(0, nil)))
	// Tests render at a reduced scale to keep raster sizes small
	svc.scale = 0.3

	snap := CatalogSnapshot{
		Items:    effItems(itemCount),
		Template: template,
		Style:    models.DefaultStyle(),
	}
	return svc, snap
}

func waitForTerminal(t *testing.T, svc *ExportService) ExportStatus {
	t.Helper()
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		status := svc.Status()
		if status.State == ExportComplete || status.State == ExportFailed {
			return status
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("export never reached a terminal state (state=%s)", svc.Status().State)
	return ExportStatus{}
}

func TestExportProducesMultiPagePDF(t *testing.T) {
	svc, snap := exportFixture(t, 10, "grid-4")

	require.NoError(t, svc.Start(context.Background(), snap))

	status := waitForTerminal(t, svc)
	assert.Equal(t, ExportComplete, status.State)
	assert.Equal(t, 100, status.Progress)
	assert.Equal(t, 3, status.Pages, "10 items at 4 per page fill 3 pages")
	assert.True(t, strings.HasPrefix(status.Filename, "catalogo_profesional_"), "filename %q", status.Filename)
	assert.True(t, strings.HasSuffix(status.Filename, ".pdf"), "filename %q", status.Filename)

	pdf, filename, err := svc.Result()
	require.NoError(t, err)
	assert.Equal(t, status.Filename, filename)
	require.Greater(t, len(pdf), 4)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestExportSinglePageShowcase(t *testing.T) {
	svc, snap := exportFixture(t, 1, "showcase-1")

	require.NoError(t, svc.Start(context.Background(), snap))

	status := waitForTerminal(t, svc)
	assert.Equal(t, ExportComplete, status.State)
	assert.Equal(t, 1, status.Pages)
}

func TestExportRejectsEmptySelection(t *testing.T) {
	svc, snap := exportFixture(t, 0, "grid-4")

	err := svc.Start(context.Background(), snap)
	assert.ErrorIs(t, err, ErrEmptySelection)
	assert.Equal(t, ExportIdle, svc.Status().State)
}

func TestExportRejectsConcurrentStart(t *testing.T) {
	svc, snap := exportFixture(t, 40, "grid-4")

	require.NoError(t, svc.Start(context.Background(), snap))

	err := svc.Start(context.Background(), snap)
	assert.ErrorIs(t, err, ErrExportInProgress)

	assert.ErrorIs(t, svc.Reset(), ErrExportInProgress, "reset is rejected mid-generation")

	status := waitForTerminal(t, svc)
	assert.Equal(t, ExportComplete, status.State)
	assert.Equal(t, 10, status.Pages)
}

func TestExportCancelledContextFails(t *testing.T) {
	svc, snap := exportFixture(t, 10, "grid-4")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, svc.Start(ctx, snap))

	status := waitForTerminal(t, svc)
	assert.Equal(t, ExportFailed, status.State)
	assert.Contains(t, status.Error, "export aborted")

	_, _, err := svc.Result()
	assert.Error(t, err, "a failed export delivers no artifact")

	// A terminal exporter can be reset and reused
	require.NoError(t, svc.Reset())
	assert.Equal(t, ExportIdle, svc.Status().State)
	require.NoError(t, svc.Start(context.Background(), snap))
	assert.Equal(t, ExportComplete, waitForTerminal(t, svc).State)
}

func TestExportIgnoresSessionEditsAfterStart(t *testing.T) {
	session := NewCatalogSession(0)
	for i := 0; i < 10; i++ {
		require.NoError(t, session.AddItem(storeItem(i)))
	}
	template, _ := models.TemplateByID("grid-4")
	session.SetTemplate(template)

	svc := NewExportService(NewPageComposer(NewImageCache(0, nil)))
	svc.scale = 0.3

	require.NoError(t, svc.Start(context.Background(), session.Snapshot()))

	// Edits after Start must not be observed by the running export
	session.ClearSelection()
	showcase, _ := models.TemplateByID("showcase-1")
	session.SetTemplate(showcase)

	status := waitForTerminal(t, svc)
	assert.Equal(t, ExportComplete, status.State)
	assert.Equal(t, 3, status.Pages)
}

func TestExportResultUnavailableWhenIdle(t *testing.T) {
	svc, _ := exportFixture(t, 1, "grid-4")

	_, _, err := svc.Result()
	assert.Error(t, err)
}

func TestGenerateReportsProgressPerPage(t *testing.T) {
	svc, snap := exportFixture(t, 10, "grid-4")

	var done []int
	pdf, err := svc.Generate(context.Background(), snap, func(d, total int) {
		assert.Equal(t, 3, total)
		done = append(done, d)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, done)
	assert.NotEmpty(t, pdf)
}
