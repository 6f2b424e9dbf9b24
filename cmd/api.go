package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"

	"github.com/DeutscheWaffel/Videoteka-UP/internal/shared"
)

// APIGet issues a direct GET under the versioned prefix and prints the
// parsed response.
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	client, err := r.gateway()
	if err != nil {
		return err
	}

	r.logger.Info("GET", "path", path)
	data, err := client.Request(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writeJSON(data, cmd.Bool("pretty"))
}

// APIPost issues a direct POST with a JSON body.
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	var body any
	if err := json.Unmarshal([]byte(cmd.String("data")), &body); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", shared.ErrInvalidInput, err)
	}

	client, err := r.gateway()
	if err != nil {
		return err
	}

	r.logger.Info("POST", "path", path)
	data, err := client.Request(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	return r.writeJSON(data, true)
}
