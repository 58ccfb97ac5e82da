package convert

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"docx2html/archive"
	"docx2html/convert/markup"
	"docx2html/misc"
	"docx2html/state"
	"docx2html/wordml"
)

// ErrUsage is returned when command line does not name exactly one input
// file.
var ErrUsage = errors.New("wrong number of arguments")

// Usage is printed on malformed command line.
var Usage = "Usage: " + misc.GetAppName() + " [options] DOCX_FILE"

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)

	// nothing could have been prepared yet, do not touch anything
	if cmd.NArg() != 1 {
		fmt.Fprintln(env.Out, Usage)
		return ErrUsage
	}

	log := env.Log.Named("convert")

	src, err := filepath.Abs(cmd.Args().First())
	if err != nil {
		return err
	}
	dst := buildOutputPath(src)

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if err := process(ctx, src, dst, log); err != nil {
		return err
	}
	fmt.Fprintln(env.Out, dst)
	return nil
}

// process converts single document. Output file is either written completely
// or left untouched.
func process(ctx context.Context, src, dst string, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	refID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("unable to generate reference id: %w", err)
	}
	log = log.With(zap.Stringer("ref_id", refID))

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", dst), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else if rerr == nil {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", dst))
		}
	}(time.Now())

	docx, err := isDocxFile(src)
	if err != nil {
		return fmt.Errorf("unable to check file type: %w", err)
	}
	if !docx {
		return fmt.Errorf("input was not recognized as DOCX document (%s)", src)
	}

	data, err := archive.ReadEntry(src, archive.DocumentEntry)
	if err != nil {
		return fmt.Errorf("unable to read document: %w", err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("source-%s/%s", refID, archive.DocumentEntry), data)
	}

	doc, err := wordml.Load(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("unable to parse document (%s): %w", src, err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("source-%s/structure.txt", refID), []byte(wordml.Dump(doc)))
	}

	conv, err := markup.New(&env.Cfg.Document, log)
	if err != nil {
		return err
	}
	body, err := conv.Convert(ctx, doc)
	if err != nil {
		return fmt.Errorf("unable to convert document: %w", err)
	}
	out, err := conv.Render(body, src)
	if err != nil {
		return err
	}

	if err := atomic.WriteFile(dst, bytes.NewReader(out)); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", refID, filepath.Ext(dst)), dst)
	}
	return nil
}
