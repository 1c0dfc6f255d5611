// Command promo-ingest distills bulk promo-code dumps into a coupon
// snapshot the API server can merge at startup.
//
// The input is a set of gzipped files, one code per line, hundreds of
// millions of lines each. A code is considered valid when it is 8-10
// characters long and appears in at least two of the files. The output is a
// JSON array of coupons; known codes get their curated rule, everything
// else defaults to 10% off.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/bits"
	"os"
	"os/signal"
	"path/filepath"
	"sort"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	pgzip "github.com/klauspost/pgzip"
	"golang.org/x/sync/errgroup"

	"github.com/snapmen/storefront/internal/domain/coupon"
	"github.com/snapmen/storefront/internal/seed"
)

const (
	bloomCapacity = 120_000_000
	bloomFPR      = 0.001
	numFiles      = 3
	progressEvery = 10_000_000
	minCodeLen    = 8
	maxCodeLen    = 10
)

// knownRules pins the discount for recognizable codes; everything else
// falls through to defaultRule.
var knownRules = map[string]coupon.Coupon{
	"FIFTYOFF": {Kind: coupon.KindPercent, Value: 50, Description: "50% off your order"},
	"SIXTYOFF": {Kind: coupon.KindPercent, Value: 60, Description: "60% off your order"},
	"GNULINUX": {Kind: coupon.KindPercent, Value: 15, Description: "Open source discount: 15% off"},
	"HAPPYHRS": {Kind: coupon.KindPercent, Value: 18, Description: "Happy Hours: 18% off"},
	"OVER9000": {Kind: coupon.KindFlat, Value: 900, MinOrder: 9000, Description: "₹900 off orders above ₹9000"},
}

var defaultRule = coupon.Coupon{
	Kind:        coupon.KindPercent,
	Value:       10,
	Description: "Valid promo code: 10% off",
}

func main() {
	var (
		dataDir string
		outPath string
	)

	flag.StringVar(&dataDir, "data-dir", "data", "directory containing couponbaseN.gz files")
	flag.StringVar(&outPath, "out", "promo-coupons.json", "output snapshot path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, dataDir, outPath); err != nil {
		slog.Error("promo ingest failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("promo ingest completed successfully", slog.String("out", outPath))
}

func run(ctx context.Context, dataDir, outPath string) error {
	files := make([]string, numFiles)
	for i := range numFiles {
		files[i] = filepath.Join(dataDir, fmt.Sprintf("couponbase%d.gz", i+1))
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			return errors.Wrapf(err, "check file %s", f)
		}
	}

	// Pass 1: a bloom filter per file, built concurrently.
	slog.Info("pass 1: building bloom filters", slog.Int("files", numFiles))

	filters, err := buildBloomFilters(ctx, files)
	if err != nil {
		return errors.Wrap(err, "build bloom filters")
	}

	// Pass 2: codes present in at least two files.
	slog.Info("pass 2: finding valid codes")

	validCodes, err := findValidCodes(ctx, files, filters)
	if err != nil {
		return errors.Wrap(err, "find valid codes")
	}

	slog.Info("valid codes found", slog.Int("count", len(validCodes)))
	if len(validCodes) == 0 {
		slog.Info("nothing to write")
		return nil
	}

	return writeSnapshot(outPath, validCodes)
}

func buildBloomFilters(ctx context.Context, files []string) ([]*bloom.BloomFilter, error) {
	filters := make([]*bloom.BloomFilter, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(buildFilterForFile(ctx, i, f, filters))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return filters, nil
}

func buildFilterForFile(ctx context.Context, idx int, path string, filters []*bloom.BloomFilter) func() error {
	return func() error {
		filter := bloom.NewWithEstimates(bloomCapacity, bloomFPR)
		var count uint64

		if err := streamGzFile(ctx, path, func(code string) {
			if len(code) < minCodeLen || len(code) > maxCodeLen {
				return
			}
			filter.AddString(code)
			count++
			if count%progressEvery == 0 {
				slog.Info("pass 1 progress", slog.Int("file", idx+1), slog.Uint64("codes", count))
			}
		}); err != nil {
			return errors.Wrapf(err, "build filter for file %d", idx+1)
		}

		slog.Info("pass 1 complete", slog.Int("file", idx+1), slog.Uint64("total_codes", count))
		filters[idx] = filter
		return nil
	}
}

// findValidCodes re-streams each file and tests codes against the OTHER
// files' filters. Bloom false positives can only add codes, never lose
// them, so the 2-of-N rule holds for every genuine code.
func findValidCodes(ctx context.Context, files []string, filters []*bloom.BloomFilter) ([]string, error) {
	results := make([]map[string]uint, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(findCandidatesInFile(ctx, i, f, filters, results))
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make(map[string]uint)
	for _, candidates := range results {
		for code, mask := range candidates {
			merged[code] |= mask
		}
	}

	var valid []string
	for code, mask := range merged {
		if bits.OnesCount(mask) >= 2 {
			valid = append(valid, code)
		}
	}
	sort.Strings(valid)
	return valid, nil
}

func findCandidatesInFile(
	ctx context.Context,
	idx int,
	path string,
	filters []*bloom.BloomFilter,
	results []map[string]uint,
) func() error {
	return func() error {
		candidates := make(map[string]uint)
		fileBit := uint(1) << uint(idx)
		var count uint64

		if err := streamGzFile(ctx, path, func(code string) {
			if len(code) < minCodeLen || len(code) > maxCodeLen {
				return
			}
			count++
			if count%progressEvery == 0 {
				slog.Info("pass 2 progress", slog.Int("file", idx+1), slog.Uint64("codes", count))
			}

			for j, f := range filters {
				if j == idx {
					continue
				}
				if f.TestString(code) {
					candidates[code] |= fileBit
					break
				}
			}
		}); err != nil {
			return errors.Wrapf(err, "scan file %d for candidates", idx+1)
		}

		slog.Info("pass 2 complete",
			slog.Int("file", idx+1),
			slog.Uint64("total_codes", count),
			slog.Int("candidates", len(candidates)),
		)
		results[idx] = candidates
		return nil
	}
}

// streamGzFile calls fn for each line of a gzip-compressed file.
func streamGzFile(ctx context.Context, path string, fn func(code string)) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "create gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}
	return nil
}

func writeSnapshot(path string, codes []string) error {
	coupons := make([]coupon.Coupon, 0, len(codes))
	for _, code := range codes {
		rule, ok := knownRules[code]
		if !ok {
			rule = defaultRule
		}
		rule.Code = code
		rule.Active = true
		coupons = append(coupons, rule)
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() { _ = out.Close() }()

	if err := seed.EncodePromoCoupons(out, coupons); err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	return nil
}
