package tesseract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonarlabs/docingest/internal/core/domain"
	"github.com/sonarlabs/docingest/internal/core/ports/driven"
)

func TestNewService(t *testing.T) {
	svc, err := NewService(nil)
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.NoError(t, svc.Close())
}

func TestProvider(t *testing.T) {
	svc, err := NewService(nil)
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, domain.OCRProviderTesseract, svc.Provider())
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.OCRService = (*Service)(nil)
}
