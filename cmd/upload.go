package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rdmup/rdmup/internal/config"
	"github.com/rdmup/rdmup/internal/logging"
	"github.com/rdmup/rdmup/internal/utils"
	"github.com/rdmup/rdmup/pkg/client"
	"github.com/rdmup/rdmup/pkg/mapper"
	"github.com/rdmup/rdmup/pkg/schemas"
	"github.com/rdmup/rdmup/pkg/uploader"
)

// maxBatchFiles is the upstream limit on how many files a single
// record can take without zipping first.
const maxBatchFiles = 100

func NewUpload() *cobra.Command {
	var cfg config.UploadCmdConfig
	loader := config.NewConfigLoader()
	cmd := &cobra.Command{
		Use:     "upload",
		Short:   "Create a draft record and upload files to it",
		Example: "  rdmup upload --system datastore --token <TOKEN> --title \"My Data\" --files ./data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpload(cmd.Context(), &cfg)
		},
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loader.Load(cmd, &cfg); err != nil {
				return err
			}
			return cfg.Validate()
		},
		SilenceUsage: true,
	}
	config.AddUploadFlags(cmd.Flags(), &cfg)
	return cmd
}

func runUpload(ctx context.Context, cfg *config.UploadCmdConfig) error {
	lvl, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	logging.SetConfig(&logging.Config{Level: lvl, FilePath: cfg.LogFile})
	logger := logging.DefaultLogger()
	defer logger.Sync()

	if cfg.Token == "" {
		return fmt.Errorf("no API token given: pass --token, set %s, or add it to a .env file", config.TokenEnv)
	}
	system, _ := config.System(cfg.System)

	base, err := filepath.Abs(cfg.Files)
	if err != nil {
		return err
	}
	info, err := os.Stat(base)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", cfg.Files, err)
	}

	var files []string
	if cfg.ZipDirectory && info.IsDir() {
		logger.Info("zipping directory, this can take a while", zap.String("dir", base))
		zipPath, err := utils.ZipDirectory(base, filepath.Base(base))
		if err != nil {
			return err
		}
		defer os.Remove(zipPath)
		zipInfo, err := os.Stat(zipPath)
		if err != nil {
			return err
		}
		logger.Info("created archive",
			zap.String("file", filepath.Base(zipPath)),
			zap.String("size", utils.FormatSize(zipInfo.Size())))
		files = []string{zipPath}
		base = zipPath
	} else {
		files, err = utils.CollectFiles(base)
		if err != nil {
			return err
		}
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to upload")
	}
	if len(files) > maxBatchFiles {
		return fmt.Errorf("found %d files; uploading more than %d files is not supported, use --zip-directory instead",
			len(files), maxBatchFiles)
	}
	logger.Info("collected files", zap.Int("count", len(files)))

	payload, err := buildPayload(cfg, system)
	if err != nil {
		return err
	}

	c := client.New(system.URL, cfg.Token, client.Options{
		VerifyTLS:   system.VerifyTLS,
		APITimeout:  cfg.APITimeout,
		PartTimeout: cfg.PartTimeout,
	})
	up := uploader.New(c,
		uploader.WithPartSize(cfg.PartSize),
		uploader.WithProgress(uploader.NewConsoleSink(os.Stdout)),
		uploader.WithLogger(logger),
	)

	draft, err := up.CreateDraft(ctx, payload)
	if err != nil {
		return err
	}

	targets, err := uploader.BuildTargets(files, base)
	if err != nil {
		return err
	}
	if err := up.UploadFiles(ctx, draft.ID, targets); err != nil {
		return err
	}

	logger.Info("upload completed", zap.String("draft", draft.ID))
	fmt.Printf("\nDraft URL: %s\nReview the draft in the web interface and publish it when ready.\n", draft.Links.SelfHTML)
	return nil
}

func buildPayload(cfg *config.UploadCmdConfig, system config.SystemConfig) (any, error) {
	if cfg.MetadataFile != "" {
		in, err := mapper.LoadMetadataFile(cfg.MetadataFile)
		if err != nil {
			return nil, err
		}
		if in.Full != nil {
			return in.Full, nil
		}
		md := *in.Simple
		if md.Title == "" {
			md.Title = cfg.Title
		}
		if err := md.Validate(); err != nil {
			return nil, fmt.Errorf("invalid metadata in %s: %w", cfg.MetadataFile, err)
		}
		return mapper.ToRecord(md, system.Restricted), nil
	}

	md := mapper.Metadata{
		Title:       cfg.Title,
		Description: cfg.Description,
	}
	for _, kw := range cfg.Keywords {
		md.Subjects = append(md.Subjects, schemas.Subject{Subject: kw})
	}
	if err := md.Validate(); err != nil {
		return nil, err
	}
	return mapper.ToRecord(md, system.Restricted), nil
}
