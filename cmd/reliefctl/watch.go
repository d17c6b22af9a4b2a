package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	reliefhub "github.com/sagiphub/reliefhub-go"
)

func newWatchCmd() *cobra.Command {
	var (
		bbox     string
		unscoped bool
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the backend and display a live view of help requests",
		Long: "Polls the backend on a fixed interval, merging each snapshot into a local view " +
			"ordered by creation time. Owned requests are swept in the background and a notice " +
			"is printed when one reaches a terminal status.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, bbox, unscoped, limit)
		},
	}

	cmd.Flags().StringVarP(&bbox, "bbox", "b", "", "Bounding box west,south,east,north (default Philippine service area)")
	cmd.Flags().BoolVar(&unscoped, "unscoped", false, "Poll without a bounding box")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum rows to display per refresh")

	return cmd
}

func runWatch(cmd *cobra.Command, bbox string, unscoped bool, limit int) error {
	ctx := cmd.Context()

	return withClient(func(cfg *Config, client *reliefhub.Client) error {
		viewport, err := watchViewport(cfg, bbox, unscoped)
		if err != nil {
			return err
		}

		p, err := client.NewPoller(reliefhub.WatchConfig{
			Viewport: viewport,
			OnUpdate: func(view []reliefhub.Request) {
				displayView(view, limit)
			},
		})
		if err != nil {
			return err
		}
		if err := p.Start(ctx); err != nil {
			return err
		}
		defer p.Stop()

		if len(client.Owned()) > 0 {
			s, err := client.NewSweeper(reliefhub.SweepConfig{
				OnEvict: func(ev reliefhub.Eviction) {
					fmt.Printf("\nNotice: your request %s is now %s and was removed from your saved requests.\n", ev.ID, ev.Status)
					// Leave the notice on screen before the next refresh overwrites it.
					time.Sleep(2 * time.Second)
				},
			})
			if err != nil {
				return err
			}
			if err := s.Start(ctx); err != nil {
				return err
			}
			defer s.Stop()
		}

		<-ctx.Done()
		fmt.Println("\nStopping.")
		return nil
	})
}

// watchViewport resolves the polling scope: explicit bbox flag, unscoped
// flag, config file viewport, then the Philippine default.
func watchViewport(cfg *Config, bbox string, unscoped bool) (*reliefhub.Viewport, error) {
	if unscoped {
		return nil, nil
	}
	if bbox != "" {
		return parseBBox(bbox)
	}
	if cfg.Viewport != nil {
		return cfg.Viewport, nil
	}
	vp := reliefhub.PhilippinesViewport
	return &vp, nil
}

func parseBBox(s string) (*reliefhub.Viewport, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bbox must be west,south,east,north")
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bbox component %q: %w", p, err)
		}
		vals[i] = v
	}
	return &reliefhub.Viewport{West: vals[0], South: vals[1], East: vals[2], North: vals[3]}, nil
}

func displayView(view []reliefhub.Request, limit int) {
	fmt.Printf("\n%s | %d requests\n", time.Now().Format("15:04:05"), len(view))
	shown := view
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, r := range shown {
		displayRequest(r)
	}
	if len(view) > len(shown) {
		fmt.Printf("  ... and %d more\n", len(view)-len(shown))
	}
}

func displayRequest(r reliefhub.Request) {
	created := "unknown"
	if !r.CreatedAt.IsZero() {
		created = r.CreatedAt.Format("2006-01-02 15:04")
	}
	fmt.Printf("  [%-8s] %-10s %s  %s (%d affected, %s)\n",
		r.Urgency, r.Status, r.ID, r.Title, r.PeopleAffected, created)
}
