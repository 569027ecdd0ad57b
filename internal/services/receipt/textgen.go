package receipt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magabrotheeeer/locadora-backend/internal/models"
)

// TextGenerator пишет квитанцию в текстовый файл в заданном каталоге.
type TextGenerator struct {
	Dir string
}

// Generate создаёт файл квитанции и возвращает путь к нему.
func (g TextGenerator) Generate(_ context.Context, receipt models.Receipt) (string, error) {
	const op = "receipt.TextGenerator.Generate"

	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n%s\n\n", receipt.Company.Name,
		receipt.Company.Address, receipt.Company.Phone)
	fmt.Fprintf(&b, "Recibo de locação %s\n", receipt.RentalID)
	fmt.Fprintf(&b, "Cliente: %s (%s)\n", receipt.ClientName, receipt.ClientPhone)
	fmt.Fprintf(&b, "Período: %s - %s (%d diárias)\n\n",
		receipt.StartDate.Format("02/01/2006"),
		receipt.EndDate.Format("02/01/2006"),
		receipt.ChargeableDays)
	for _, line := range receipt.Lines {
		fmt.Fprintf(&b, "%dx %s @ %s/dia = %s\n",
			line.Quantity, line.EquipmentName,
			formatCents(line.DailyRateCents), formatCents(line.SubtotalCents))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", formatCents(receipt.TotalCents))
	fmt.Fprintf(&b, "Emitido em %s\n", receipt.IssuedAt.Format("02/01/2006 15:04"))

	path := filepath.Join(g.Dir, fmt.Sprintf("recibo-%s.txt", receipt.RentalID))
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return path, nil
}

// Share на сервере только проверяет, что файл существует: нативного
// механизма шаринга здесь нет, файл забирает вызывающий.
func (g TextGenerator) Share(_ context.Context, path string) error {
	const op = "receipt.TextGenerator.Share"
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("R$ %d,%02d", cents/100, cents%100)
}
