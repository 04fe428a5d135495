// 指示: miu200521358
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/miu200521358/mu_skin_weights/pkg/adapter/io_snapshot"
	"github.com/miu200521358/mu_skin_weights/pkg/domain/model"
	"github.com/miu200521358/mu_skin_weights/pkg/usecase/winteractor"
)

// options はCLI引数を保持する。
type options struct {
	mode       string
	inputPath  string
	targetPath string
	outputPath string
	tolerance  float64
}

// main はスナップショットファイルへの操作を実行する。
func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, out io.Writer, errOut io.Writer) error {
	opts, err := parseOptions(args, errOut)
	if err != nil {
		return err
	}

	repository := io_snapshot.NewSnapshotRepository()
	if !repository.CanLoad(opts.inputPath) {
		return fmt.Errorf("入力形式が未対応です: %s", opts.inputPath)
	}
	snapshot, err := repository.Load(opts.inputPath)
	if err != nil {
		return err
	}

	switch opts.mode {
	case "info":
		return runInfo(out, opts.inputPath, snapshot)
	case "prune":
		return runPrune(out, repository, opts, snapshot)
	case "transfer":
		return runTransfer(out, repository, opts, snapshot)
	default:
		return fmt.Errorf("未対応のモードです: %s", opts.mode)
	}
}

// runInfo はスナップショットの概要を表示する。
func runInfo(out io.Writer, path string, snapshot *model.SkinSnapshot) error {
	fmt.Fprintf(out, "[mu_skin_weights] スナップショット: %s\n", path)
	fmt.Fprintf(out, "  名前: %s\n", snapshot.Name)
	fmt.Fprintf(out, "  頂点数: %d\n", snapshot.VertexCount())
	fmt.Fprintf(out, "  インフルエンス上限: %d\n", snapshot.MaxInfluences)
	fmt.Fprintf(out, "  インフルエンス数: %d\n", len(snapshot.Influences))

	indexes := make([]int, 0, len(snapshot.Influences))
	for influenceIndex := range snapshot.Influences {
		indexes = append(indexes, influenceIndex)
	}
	sort.Ints(indexes)
	for _, influenceIndex := range indexes {
		fmt.Fprintf(out, "    [%d] %s\n", influenceIndex, snapshot.Influences[influenceIndex])
	}
	return nil
}

// runPrune は許容値未満のウェイトを切り詰めて保存する。
func runPrune(out io.Writer, repository *io_snapshot.SnapshotRepository, opts options, snapshot *model.SkinSnapshot) error {
	selection := make([]int, snapshot.VertexCount())
	weightsByVertex := make(map[int]model.WeightMap, snapshot.VertexCount())
	for vertexIndex, weights := range snapshot.Weights {
		selection[vertexIndex] = vertexIndex
		weightsByVertex[vertexIndex] = weights
	}

	result, err := winteractor.PruneVertices(selection, weightsByVertex, opts.tolerance)
	if err != nil {
		return err
	}
	for vertexIndex, weights := range result.Updates {
		snapshot.Weights[vertexIndex] = weights
	}

	if err := repository.Save(opts.outputPath, snapshot); err != nil {
		return err
	}
	fmt.Fprintf(out, "[mu_skin_weights] 切り詰め完了: %s (tolerance=%g)\n", opts.outputPath, opts.tolerance)
	return nil
}

// runTransfer は入力スナップショットのウェイトを対象スナップショットの点群へ
// 最近傍対応で転送して保存する。
func runTransfer(out io.Writer, repository *io_snapshot.SnapshotRepository, opts options, snapshot *model.SkinSnapshot) error {
	target, err := repository.Load(opts.targetPath)
	if err != nil {
		return err
	}

	influenceMap, err := winteractor.BuildInfluenceMap(snapshot.Influences, target.Influences, nil)
	if err != nil {
		return err
	}
	transferred, err := winteractor.ApplyClosestWeights(snapshot.Points, snapshot.Weights, target.Points, influenceMap)
	if err != nil {
		return err
	}

	merged := make(model.InfluenceNameMap, len(target.Influences)+len(snapshot.Influences))
	for influenceIndex, name := range snapshot.Influences {
		merged[influenceMap.Resolve(influenceIndex)] = name
	}
	for influenceIndex, name := range target.Influences {
		merged[influenceIndex] = name
	}

	retargeted, err := model.NewSkinSnapshot(target.Name, merged, snapshot.MaxInfluences, transferred, target.Points)
	if err != nil {
		return err
	}
	if err := repository.Save(opts.outputPath, retargeted); err != nil {
		return err
	}
	fmt.Fprintf(out, "[mu_skin_weights] 転送完了: %s -> %s\n", opts.inputPath, opts.outputPath)
	return nil
}

// parseOptions はCLI引数を解析する。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	fs := flag.NewFlagSet("mu_skin_weights", flag.ContinueOnError)
	fs.SetOutput(errOut)

	mode := fs.String("mode", "info", "実行モード (info / prune / transfer)")
	in := fs.String("in", "", "入力スナップショットファイルパス")
	target := fs.String("target", "", "転送先スナップショットファイルパス (transfer)")
	out := fs.String("out", "", "出力スナップショットファイルパス")
	tolerance := fs.Float64("tolerance", 1e-3, "切り詰め許容値 (prune)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	if *in == "" && fs.NArg() > 0 {
		*in = fs.Arg(0)
	}
	if *in == "" {
		return options{}, fmt.Errorf("入力スナップショットファイルを指定してください (-in)")
	}
	if *mode == "prune" || *mode == "transfer" {
		if *out == "" {
			return options{}, fmt.Errorf("出力スナップショットファイルを指定してください (-out)")
		}
	}
	if *mode == "transfer" && *target == "" {
		return options{}, fmt.Errorf("転送先スナップショットファイルを指定してください (-target)")
	}

	return options{
		mode:       *mode,
		inputPath:  *in,
		targetPath: *target,
		outputPath: *out,
		tolerance:  *tolerance,
	}, nil
}
