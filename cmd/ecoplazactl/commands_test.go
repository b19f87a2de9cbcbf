package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_Argumento(t *testing.T) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	require.NoError(t, runHashPassword(cmd, []string{"secreto123"}))
	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secreto123")))
}

func TestHashPassword_Stdin(t *testing.T) {
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetIn(strings.NewReader("otraClave99\n"))

	require.NoError(t, runHashPassword(cmd, nil))
	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("otraClave99")))
}

func TestHashPassword_Corta(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})
	assert.Error(t, runHashPassword(cmd, []string{"corta"}))
}

func TestLeerLocales(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locales.csv")
	require.NoError(t, os.WriteFile(path, []byte("codigo,proyecto,metraje,precio_base\nA-101,EcoPlaza Trapiche,12.5,45000\n"), 0o600))

	rows, err := leerLocales(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A-101", rows[0].Codigo)
	assert.Equal(t, "12.5", rows[0].Metraje.String())

	_, err = leerLocales(filepath.Join(t.TempDir(), "no-existe.csv"))
	assert.Error(t, err)
}

func TestLeerLeads_ColumnasFaltantes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte("nombre,telefono\nAna,51999000111\n"), 0o600))

	_, err := leerLeads(path)
	assert.Error(t, err)
}

func TestRootCmd_Subcomandos(t *testing.T) {
	nombres := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		nombres[c.Name()] = true
	}
	for _, n := range []string{"cleanup-reuniones", "import-locales", "import-leads", "detect-repulse", "hash-password"} {
		assert.True(t, nombres[n], n)
	}
	assert.NotNil(t, importLeadsCmd.Flags().Lookup("proyecto"))
	assert.NotNil(t, cleanupCmd.Flags().Lookup("dias"))
	assert.NotNil(t, detectRepulseCmd.Flags().Lookup("proyecto"))
}
