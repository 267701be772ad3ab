package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// daemonClient talks to a running daemon's control API.
type daemonClient struct {
	addr       string
	httpClient *http.Client
}

func newDaemonClient(addr string) *daemonClient {
	return &daemonClient{
		addr:       addr,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *daemonClient) post(path string, body any) ([]byte, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.httpClient.Post(c.addr+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("daemon unreachable: %w", err)
	}
	defer resp.Body.Close()

	return c.readResponse(resp)
}

func (c *daemonClient) get(path string) ([]byte, error) {
	resp, err := c.httpClient.Get(c.addr + path)
	if err != nil {
		return nil, fmt.Errorf("daemon unreachable: %w", err)
	}
	defer resp.Body.Close()

	return c.readResponse(resp)
}

func (c *daemonClient) readResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("daemon returned %s: %s", resp.Status, bytes.TrimSpace(body))
	}
	return body, nil
}

func newLoadCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "load <videoID>",
		Short: "Load a video into the playback surface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := newDaemonClient(*addr).post("/v1/player/load", map[string]string{
				"video_id": args[0],
			})
			if err != nil {
				return err
			}
			cmd.Println(string(bytes.TrimSpace(body)))
			return nil
		},
	}
}

func newStateCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the playback surface state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := newDaemonClient(*addr).get("/v1/player/state")
			if err != nil {
				return err
			}
			cmd.Println(string(bytes.TrimSpace(body)))
			return nil
		},
	}
}

func newCacheCmd(addr *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Cache maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "invalidate [prefix]",
		Short: "Invalidate cached responses by key prefix (all when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			if _, err := newDaemonClient(*addr).post("/v1/cache/invalidate", map[string]string{
				"prefix": prefix,
			}); err != nil {
				return err
			}
			cmd.Println("ok")
			return nil
		},
	})

	return cmd
}
