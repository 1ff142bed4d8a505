package zoneamento

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"

	"github.com/rcbarbosa/zoneamento/core"
	"github.com/rcbarbosa/zoneamento/domain"
)

// publish registers a finished partition with the registry, records it on the
// run, persists nothing itself (Classify records the run once it completes),
// writes the layer's style sidecar when a style directory is configured, and
// fires the host's OnPublish hook. A nil layer is a silently skipped
// degraded partition.
func (project *Project) publish(run *domain.Run, layer *domain.Layer) {
	if layer == nil {
		return
	}
	project.Registry.Add(layer)

	partition := &domain.Partition{
		ID:           uuid.Must(uuid.NewV7()),
		RunID:        run.ID,
		Name:         layer.Name,
		FeatureCount: len(layer.Features),
		AreaHa:       totalAreaHa(layer),
		CreatedAt:    time.Now(),
	}
	run.Partitions = append(run.Partitions, partition)

	project.WriteLog("INFO", fmt.Sprintf("published layer %q with %d features (%.4f ha)", layer.Name, partition.FeatureCount, partition.AreaHa), core.LogWithRunID(run.ID), core.LogWithLayer(layer.Name))

	if project.Config.StyleDir != "" {
		if err := WriteStyle(project.Config.StyleDir, layer.Name); err != nil {
			project.WriteLog("WARN", fmt.Sprintf("writing style for %q : %v", layer.Name, err), core.LogWithLayer(layer.Name))
		}
	}

	if project.OnPublish != nil {
		if err := project.OnPublish(layer); err != nil {
			project.WriteLog("WARN", fmt.Sprintf("publish handler for %q : %v", layer.Name, err), core.LogWithLayer(layer.Name))
		}
	}
}

// totalAreaHa sums the annotated hectare values of a layer.
func totalAreaHa(layer *domain.Layer) float64 {
	var total float64
	for i := range layer.Features {
		if hectares, ok := layer.Features[i].Attributes[AreaField].(float64); ok {
			total += hectares
		}
	}
	return total
}

// fillStyle describes the simple-fill symbology of one output layer.
type fillStyle struct {
	fill        string
	stroke      string
	strokeWidth string
}

// styleColors maps output layer names to their symbology. "Fora Total" keeps
// the semi-transparent red fill with a black 0.5 border; the priority outputs
// get a fixed palette in the same format (r,g,b,a).
var styleColors = map[string]fillStyle{
	NameTotalOutside:       {fill: "255,0,0,120", stroke: "0,0,0,255", strokeWidth: "0.5"},
	NameSuppressionInAPP:   {fill: "31,120,180,120", stroke: "0,0,0,255", strokeWidth: "0.5"},
	NameSuppressionInRL:    {fill: "51,160,44,120", stroke: "0,0,0,255", strokeWidth: "0.5"},
	NameSuppressionOutside: {fill: "255,127,0,120", stroke: "0,0,0,255", strokeWidth: "0.5"},
}

// WriteStyle writes a QGIS .qml style sidecar for the named output layer into
// dir. Layers without a fixed symbology are skipped.
func WriteStyle(dir string, layerName string) error {
	style, ok := styleColors[layerName]
	if !ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating style dir %s : %w", dir, err)
	}

	doc := etree.NewDocument()
	qgis := doc.CreateElement("qgis")
	qgis.CreateAttr("styleCategories", "Symbology")
	renderer := qgis.CreateElement("renderer-v2")
	renderer.CreateAttr("type", "singleSymbol")
	symbol := renderer.CreateElement("symbols").CreateElement("symbol")
	symbol.CreateAttr("type", "fill")
	symbol.CreateAttr("name", "0")
	simpleFill := symbol.CreateElement("layer")
	simpleFill.CreateAttr("class", "SimpleFill")
	options := simpleFill.CreateElement("Option")
	options.CreateAttr("type", "Map")
	for name, value := range map[string]string{
		"color":         style.fill,
		"outline_color": style.stroke,
		"outline_width": style.strokeWidth,
		"outline_style": "solid",
		"style":         "solid",
	} {
		option := options.CreateElement("Option")
		option.CreateAttr("name", name)
		option.CreateAttr("type", "QString")
		option.CreateAttr("value", value)
	}

	doc.Indent(2)
	path := filepath.Join(dir, layerName+".qml")
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("writing style file %s : %w", path, err)
	}
	return nil
}
