package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecoplaza/ecoplaza-api/internal/application/auth"
	"github.com/ecoplaza/ecoplaza-api/internal/application/dto"
	"github.com/ecoplaza/ecoplaza-api/internal/interfaces/csvimport"
)

var (
	cleanupDias    int
	localesFile    string
	leadsFile      string
	leadsProyecto  string
	detectProyecto string
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup-reuniones",
	Short: "Borra del storage las grabaciones vencidas",
	Long: `Elimina los archivos de audio/video de reuniones más antiguas que la
retención configurada (REUNIONES_RETENCION_DIAS). La transcripción y los
action items se conservan.`,
	RunE: runCleanup,
}

var importLocalesCmd = &cobra.Command{
	Use:   "import-locales",
	Short: "Importa locales desde un CSV (codigo, proyecto, metraje, precio_base, estado)",
	RunE:  runImportLocales,
}

var importLeadsCmd = &cobra.Command{
	Use:   "import-leads",
	Short: "Importa leads de un proyecto desde un CSV (nombre, telefono, email_vendedor, utm)",
	RunE:  runImportLeads,
}

var detectRepulseCmd = &cobra.Command{
	Use:   "detect-repulse",
	Short: "Agrega a la campaña de repulse los leads candidatos de un proyecto",
	RunE:  runDetectRepulse,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Genera el hash bcrypt de una contraseña (lee stdin si no se pasa argumento)",
	Args:  cobra.MaximumNArgs(1),
	// no necesita configuración ni base de datos
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              runHashPassword,
}

func init() {
	cleanupCmd.Flags().IntVar(&cleanupDias, "dias", 0, "días de retención (0 = configuración)")

	importLocalesCmd.Flags().StringVarP(&localesFile, "file", "f", "", "ruta del CSV")
	_ = importLocalesCmd.MarkFlagRequired("file")

	importLeadsCmd.Flags().StringVarP(&leadsFile, "file", "f", "", "ruta del CSV")
	importLeadsCmd.Flags().StringVar(&leadsProyecto, "proyecto", "", "ID del proyecto")
	_ = importLeadsCmd.MarkFlagRequired("file")
	_ = importLeadsCmd.MarkFlagRequired("proyecto")

	detectRepulseCmd.Flags().StringVar(&detectProyecto, "proyecto", "", "ID del proyecto")
	_ = detectRepulseCmd.MarkFlagRequired("proyecto")
}

func runDetectRepulse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	c, pool, err := conectar(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	res, err := c.Repulse.Detectar(ctx, detectProyecto)
	if err != nil {
		return err
	}
	return imprimirJSON(cmd, res)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	if cleanupDias < 0 {
		return errors.New("--dias no puede ser negativo")
	}
	ctx := cmd.Context()
	c, pool, err := conectar(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	res, err := c.Reuniones.CleanupMedia(ctx, cleanupDias)
	if err != nil {
		return err
	}
	log.Info().Int("limpiadas", res.CleanedCount).Int("errores", res.ErrorCount).Msg("reuniones: limpieza terminada")
	return imprimirJSON(cmd, res)
}

func leerLocales(path string) ([]dto.ImportLocalRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	return csvimport.Locales(f)
}

func leerLeads(path string) ([]dto.ImportLeadRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()
	return csvimport.Leads(f)
}

func runImportLocales(cmd *cobra.Command, args []string) error {
	rows, err := leerLocales(localesFile)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	c, pool, err := conectar(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	res, err := c.Locales.Import(ctx, rows)
	if err != nil {
		return err
	}
	log.Info().Int("insertados", res.Inserted).Int("omitidos", res.Skipped).Int("errores", len(res.Errors)).Msg("locales: import terminado")
	return imprimirJSON(cmd, res)
}

func runImportLeads(cmd *cobra.Command, args []string) error {
	rows, err := leerLeads(leadsFile)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	c, pool, err := conectar(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	defer c.Notifier.Wait()

	res, err := c.Leads.Import(ctx, dto.ImportLeadsRequest{ProyectoID: leadsProyecto, Leads: rows})
	if err != nil {
		return err
	}
	log.Info().Int("importados", res.Importados).Int("duplicados", res.Duplicados).Int("invalidos", len(res.Invalidos)).Msg("leads: import terminado")
	return imprimirJSON(cmd, res)
}

func runHashPassword(cmd *cobra.Command, args []string) error {
	var plain string
	if len(args) == 1 {
		plain = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		plain = strings.TrimRight(line, "\r\n")
	}
	if len(plain) < 8 {
		return errors.New("la contraseña debe tener al menos 8 caracteres")
	}
	hash, err := auth.HashPassword(plain)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
	return err
}
