package toast

import (
	"strings"
	"testing"
	"time"

	"github.com/riordanpawley/translate-ai/internal/types"
	"github.com/riordanpawley/translate-ai/internal/ui/styles"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestRenderer_Render_Empty(t *testing.T) {
	renderer := New(styles.New())

	assert.Equal(t, "", renderer.Render(nil, 80, now))
}

func TestRenderer_Render_SingleToast(t *testing.T) {
	renderer := New(styles.New())

	toasts := []types.Toast{types.NewToast(types.ToastSuccess, "Copied", now, 2*time.Second)}

	result := renderer.Render(toasts, 80, now)

	assert.Contains(t, result, "Copied")
}

func TestRenderer_Render_DropsExpired(t *testing.T) {
	renderer := New(styles.New())

	toasts := []types.Toast{
		types.NewToast(types.ToastInfo, "stale", now.Add(-time.Minute), time.Second),
		types.NewToast(types.ToastInfo, "fresh", now, time.Minute),
	}

	result := renderer.Render(toasts, 80, now)

	assert.Contains(t, result, "fresh")
	assert.NotContains(t, result, "stale")
}

func TestRenderer_Render_AllExpired(t *testing.T) {
	renderer := New(styles.New())

	toasts := []types.Toast{types.NewToast(types.ToastInfo, "gone", now, time.Second)}

	assert.Equal(t, "", renderer.Render(toasts, 80, now.Add(time.Hour)))
}

func TestRenderer_Render_MultipleToastsStack(t *testing.T) {
	renderer := New(styles.New())

	toasts := []types.Toast{
		types.NewToast(types.ToastInfo, "First", now, time.Minute),
		types.NewToast(types.ToastWarning, "Second", now, time.Minute),
	}

	result := renderer.Render(toasts, 80, now)

	assert.Contains(t, result, "First")
	assert.Contains(t, result, "Second")
	assert.Greater(t, len(strings.Split(result, "\n")), 1)
}

func TestRenderer_Render_HumanizesErrors(t *testing.T) {
	renderer := New(styles.New())

	toasts := []types.Toast{types.NewToast(types.ToastError, "rate-limit exceeded, slow down", now, time.Minute)}

	result := renderer.Render(toasts, 120, now)

	assert.Contains(t, result, "Rate limit reached.")
}

func TestRenderer_styleForLevel(t *testing.T) {
	s := styles.New()
	renderer := New(s)

	assert.Equal(t, s.ToastInfo, renderer.styleForLevel(types.ToastInfo))
	assert.Equal(t, s.ToastSuccess, renderer.styleForLevel(types.ToastSuccess))
	assert.Equal(t, s.ToastWarning, renderer.styleForLevel(types.ToastWarning))
	assert.Equal(t, s.ToastError, renderer.styleForLevel(types.ToastError))
}
