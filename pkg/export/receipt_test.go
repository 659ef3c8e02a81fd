package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReceipt(t *testing.T) {
	renderer := NewReceiptRenderer()

	pdf, err := renderer.Render("Registration Receipt", []ReceiptLine{
		{Label: "Name", Value: "Budi Santoso"},
		{Label: "Email", Value: "budi@example.com"},
		{Label: "Role", Value: "Driver Mitra"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	// PDF magic header
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestRenderReceiptRequiresLines(t *testing.T) {
	renderer := NewReceiptRenderer()
	_, err := renderer.Render("Empty", nil)
	require.Error(t, err)
}
