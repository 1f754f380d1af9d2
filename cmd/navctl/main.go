// Command navctl exercises the routing and path helpers the portal map uses,
// against the same environment configuration as the server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"wastepoint/internal/config"
	"wastepoint/internal/navigation"
	"wastepoint/internal/utils"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "navctl",
		Short:        "Inspect collector navigation: routing lookups, route paths and display formats",
		SilenceUsage: true,
	}
	rootCmd.AddCommand(newNavigateCmd(), newParsePathCmd(), newFormatCmd())
	return rootCmd
}

func newNavigateCmd() *cobra.Command {
	var from, to, baseURL string
	var printPath bool

	cmd := &cobra.Command{
		Use:   "navigate",
		Short: "Ask the routing service for a driving path between two points",
		RunE: func(c *cobra.Command, args []string) error {
			cfg := config.Load()
			start, err := latLng(from)
			if err != nil {
				return err
			}
			end, err := latLng(to)
			if err != nil {
				return err
			}
			if baseURL == "" {
				baseURL = cfg.RoutingBaseURL
			}

			lookup := &navigation.OSRMLookup{
				BaseURL:   baseURL,
				Profile:   cfg.RoutingProfile,
				UserAgent: cfg.RoutingUserAgent,
				Client:    &http.Client{Timeout: cfg.RoutingTimeout},
			}
			ctx, cancel := context.WithTimeout(c.Context(), cfg.RoutingTimeout)
			defer cancel()

			route, err := lookup.Lookup(ctx, start, end)
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			fmt.Fprintf(out, "distance: %s\n", navigation.FormatDistance(route.DistanceMeters))
			fmt.Fprintf(out, "duration: %s\n", navigation.FormatDuration(route.DurationSeconds))
			fmt.Fprintf(out, "points:   %d\n", len(route.Path))
			if printPath {
				writePath(out, route.Path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "start as lat,lng")
	cmd.Flags().StringVar(&to, "to", "", "destination as lat,lng")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "routing service URL (defaults to ROUTING_BASE_URL)")
	cmd.Flags().BoolVar(&printPath, "path", false, "print every path vertex")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newParsePathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse-path [file]",
		Short: "Read a route's GeoJSON LineString (or Feature) and print its vertices as lat,lng",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var r io.Reader = c.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			data, err := io.ReadAll(r)
			if err != nil {
				return err
			}
			path := navigation.ParsePath(json.RawMessage(data))
			if path == nil {
				return fmt.Errorf("no LineString found")
			}
			writePath(c.OutOrStdout(), path)
			return nil
		},
	}
}

func newFormatCmd() *cobra.Command {
	var distance, duration string

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Render a distance in meters and/or a duration in seconds the way the map shows them",
		RunE: func(c *cobra.Command, args []string) error {
			if distance == "" && duration == "" {
				return fmt.Errorf("pass --distance and/or --duration")
			}
			out := c.OutOrStdout()
			if distance != "" {
				m, err := strconv.ParseFloat(distance, 64)
				if err != nil {
					return fmt.Errorf("distance: %w", err)
				}
				fmt.Fprintln(out, navigation.FormatDistance(m))
			}
			if duration != "" {
				s, err := strconv.ParseFloat(duration, 64)
				if err != nil {
					return fmt.Errorf("duration: %w", err)
				}
				fmt.Fprintln(out, navigation.FormatDuration(s))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&distance, "distance", "", "meters")
	cmd.Flags().StringVar(&duration, "duration", "", "seconds")
	return cmd
}

func latLng(s string) (navigation.LatLng, error) {
	lat, lng, err := utils.ParseLatLng(s)
	if err != nil {
		return navigation.LatLng{}, err
	}
	return navigation.LatLng{Lat: lat, Lng: lng}, nil
}

func writePath(w io.Writer, path []navigation.LatLng) {
	for _, p := range path {
		fmt.Fprintf(w, "%.6f,%.6f\n", p.Lat, p.Lng)
	}
}
