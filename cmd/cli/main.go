package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/amirasaad/opsledger/infra/initializer"
	"github.com/amirasaad/opsledger/pkg/app"
	"github.com/amirasaad/opsledger/pkg/config"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/amirasaad/opsledger/pkg/repository"
	"github.com/amirasaad/opsledger/pkg/service/ledger"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/term"
)

const usage = `Usage: cli <command> [arguments]
Commands:
  balance <category_id>
  history <category_id> [limit]
  transfer <source_id> <target_id> <amount> <description>
  system-balance
  clients [year]
  status <client_id> <deposit|building|built>`

var errUsage = errors.New("invalid arguments")

func main() {
	if len(os.Args) < 2 {
		fmt.Println(usage)
		return
	}
	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Println("Failed to load configuration:", err)
		os.Exit(1)
	}
	deps, cleanup, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		fmt.Println("Failed to connect to database:", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := run(context.Background(), app.New(deps, cfg), os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Println(usage)
		}
		color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err) //nolint: errcheck
		cleanup()
		os.Exit(1)
	}
}

func run(ctx context.Context, a *app.App, args []string, out io.Writer) error {
	codec := a.LedgerService.Codec()
	amount := color.New(color.FgGreen, color.Bold).SprintFunc()
	negative := color.New(color.FgRed, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	formatAmount := func(v money.Amount) string {
		if v < 0 {
			return negative(codec.Format(v))
		}
		return amount(codec.Format(v))
	}

	switch args[0] {
	case "balance":
		if len(args) < 2 {
			return errUsage
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid category id: %w", err)
		}
		cat, err := a.LedgerService.GetCategory(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s\n", cat.Title, formatAmount(cat.Balance))
	case "history":
		if len(args) < 2 {
			return errUsage
		}
		page := repository.Page{}
		if len(args) > 2 {
			limit, err := strconv.Atoi(args[2])
			if err != nil || limit < 0 {
				return fmt.Errorf("invalid limit %q", args[2])
			}
			page.Limit = limit
		}
		txs, err := a.LedgerService.History(ctx, args[1], page)
		if err != nil {
			return err
		}
		for _, tx := range txs {
			fmt.Fprintf(out, "%s  %s -> %s  %s  %s\n",
				dim(tx.Date.Format("2006-01-02 15:04")), tx.FromUser, tx.ToUser, formatAmount(tx.Amount), tx.Description)
		}
	case "transfer":
		if len(args) < 5 {
			return errUsage
		}
		source, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid source id: %w", err)
		}
		target, err := uuid.Parse(args[2])
		if err != nil {
			return fmt.Errorf("invalid target id: %w", err)
		}
		value, err := codec.ParseExact(args[3])
		if err != nil {
			return err
		}
		res, err := a.LedgerService.Transfer(ctx, ledger.TransferCommand{
			SourceID:    source,
			TargetID:    target,
			Amount:      value,
			Description: strings.Join(args[4:], " "),
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Transferred %s from %s to %s\n", formatAmount(value), res.Source.Title, res.Target.Title)
		fmt.Fprintf(out, "  %s %s\n  %s %s\n", res.Source.Title, formatAmount(res.Source.Balance), res.Target.Title, formatAmount(res.Target.Balance))
	case "system-balance":
		total, err := a.LedgerService.SystemBalance(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "System balance %s\n", formatAmount(total))
	case "clients":
		filter := repository.ClientFilter{}
		if len(args) > 1 {
			year, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid year %q", args[1])
			}
			filter.Year = year
		}
		clients, err := a.ClientService.ListClients(ctx, filter)
		if err != nil {
			return err
		}
		for _, c := range clients {
			p := c.PaymentProgress()
			fmt.Fprintf(out, "%s  %-30s %-9s %5.1f%%\n", c.ClientNumber, c.FullName(), statusColor(c.Status), p.Percent)
		}
	case "status":
		if len(args) < 3 {
			return errUsage
		}
		id, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid client id: %w", err)
		}
		res, err := a.ClientService.SetStatus(ctx, id, "", common.Status(args[2]))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Status %s applied to %d accounts\n", statusColor(res.Status), len(res.CategoryIDs))
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return nil
}

func statusColor(s common.Status) string {
	switch s {
	case common.StatusBuilding:
		return color.YellowString(string(s))
	case common.StatusBuilt:
		return color.GreenString(string(s))
	default:
		return color.CyanString(string(s))
	}
}
