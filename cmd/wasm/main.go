//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"syscall/js"

	"github.com/hack-pad/hackpadfs/indexeddb"

	"github.com/thoughtvault/govault/pkg/embed"
	"github.com/thoughtvault/govault/pkg/filter"
	"github.com/thoughtvault/govault/pkg/viz"
)

// Version info
const Version = "1.0.0"

// Global state
var (
	items       []viz.Item
	activeQuery filter.Query
	edgeSet     []viz.SimilarityEdge
	vectors     *embed.Store

	scatterCanvas *viz.JSCanvas
	scatterView   *viz.ScatterView
	networkView   *viz.NetworkView
	graphSolver   *forceGraphSolver

	onFocus js.Value
)

func main() {
	println("[GoVault] WASM Ready v" + Version)

	js.Global().Set("GoVault", js.ValueOf(map[string]interface{}{
		"version":       js.FuncOf(getVersion),
		"initVectors":   js.FuncOf(initVectors),
		"saveVectors":   js.FuncOf(saveVectors),
		"setThoughts":   js.FuncOf(setThoughts),
		"similarity":    js.FuncOf(similarityEdges),
		"facets":        js.FuncOf(facets),
		"setFilter":     js.FuncOf(setFilter),
		"attachScatter": js.FuncOf(attachScatter),
		"attachNetwork": js.FuncOf(attachNetwork),
		"onFocus":       js.FuncOf(setOnFocus),
	}))

	select {}
}

func getVersion(this js.Value, args []js.Value) interface{} {
	return Version
}

// initVectors opens the IndexedDB-backed HNSW store.
// Args: [] (uses the default "govault" DB and "hnsw.bin" path)
func initVectors(this js.Value, args []js.Value) interface{} {
	fs, err := indexeddb.NewFS(context.Background(), "govault", indexeddb.Options{})
	if err != nil {
		return errorResult("failed to create idb fs: " + err.Error())
	}
	vectors, err = embed.NewStore(fs, "hnsw.bin")
	if err != nil {
		return errorResult("failed to load vector store: " + err.Error())
	}
	return successResult("vector store initialized")
}

func saveVectors(this js.Value, args []js.Value) interface{} {
	if vectors == nil {
		return errorResult("vector store not initialized")
	}
	if err := vectors.Save(); err != nil {
		return errorResult("save failed: " + err.Error())
	}
	return successResult("vector store saved")
}

// setThoughts replaces the item collection. Args: [itemsJSON string].
// Timestamps are RFC3339. Embeddings, when present, are indexed.
func setThoughts(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: itemsJSON (string)")
	}

	var incoming []viz.Item
	if err := json.Unmarshal([]byte(args[0].String()), &incoming); err != nil {
		return errorResult("invalid items json: " + err.Error())
	}
	items = incoming

	if vectors != nil {
		for _, it := range items {
			if len(it.Embedding) == 0 {
				continue
			}
			if err := vectors.Add(it.ID, it.Embedding); err != nil {
				println("[GoVault] skipping vector for " + it.ID + ": " + err.Error())
			}
		}
	}

	refreshViews()
	return successResult("thoughts loaded")
}

// visibleItems applies the active filter query; a zero query passes the
// whole collection through.
func visibleItems() []viz.Item {
	return filter.Apply(items, activeQuery)
}

// similarityEdges derives the network edge set from the vector index.
// Args: [k int, threshold float]. Returns the edges as JSON and feeds them
// to the attached network view.
func similarityEdges(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: k (int), threshold (float)")
	}
	if vectors == nil {
		return errorResult("vector store not initialized")
	}

	edgeSet = vectors.SimilarityEdges(args[0].Int(), args[1].Float())
	if networkView != nil {
		// The active filter keeps narrowing the view; edges to hidden
		// thoughts are dropped by SetData's endpoint check.
		networkView.SetData(visibleItems(), edgeSet)
		if networkView.Dropped > 0 {
			println("[GoVault] dropped edges with missing endpoints:", networkView.Dropped)
		}
	}

	out, _ := json.Marshal(edgeSet)
	return string(out)
}

// facets returns the year/month histogram for the facet UI.
func facets(this js.Value, args []js.Value) interface{} {
	out, _ := json.Marshal(filter.Facets(items))
	return string(out)
}

// setFilter narrows both views. Args: [queryJSON string] matching
// filter.Query; pass "{}" to clear.
func setFilter(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: queryJSON (string)")
	}
	var q filter.Query
	if err := json.Unmarshal([]byte(args[0].String()), &q); err != nil {
		return errorResult("invalid query json: " + err.Error())
	}
	activeQuery = q
	refreshViews()
	return successResult("filter applied")
}

func refreshViews() {
	filtered := visibleItems()
	if scatterView != nil {
		scatterView.SetItems(filtered)
		scatterCanvas.SetCursor(scatterView.Cursor())
	}
	if networkView != nil {
		networkView.SetData(filtered, edgeSet)
	}
}

// setOnFocus registers the callback invoked with an item id after
// click-to-focus, for the surrounding UI to open the item.
func setOnFocus(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: callback (function)")
	}
	onFocus = args[0]
	return successResult("focus callback set")
}

func fireFocus(id string) {
	if onFocus.Truthy() {
		onFocus.Invoke(id)
	}
}

// attachScatter binds the scatter view to a canvas element.
// Args: [canvasId string]
func attachScatter(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return errorResult("requires 1 arg: canvasId (string)")
	}
	canvas := js.Global().Get("document").Call("getElementById", args[0].String())
	if !canvas.Truthy() {
		return errorResult("canvas not found: " + args[0].String())
	}

	scatterCanvas = viz.NewJSCanvas(canvas)
	scatterView = viz.NewScatterView(scatterCanvas, viz.ScatterOptions{OnFocus: fireFocus})
	scatterView.SetItems(visibleItems())

	listen := func(event string, handler func(x, y float64)) {
		canvas.Call("addEventListener", event, js.FuncOf(func(this js.Value, eargs []js.Value) interface{} {
			x, y := scatterCanvas.PointerPos(eargs[0])
			handler(x, y)
			scatterCanvas.SetCursor(scatterView.Cursor())
			return nil
		}))
	}
	listen("mousedown", scatterView.PointerDown)
	listen("mousemove", scatterView.PointerMove)
	listen("click", scatterView.Click)
	listen("mouseup", func(x, y float64) { scatterView.PointerUp() })
	listen("mouseleave", func(x, y float64) { scatterView.PointerLeave() })

	canvas.Call("addEventListener", "wheel", js.FuncOf(func(this js.Value, eargs []js.Value) interface{} {
		eargs[0].Call("preventDefault")
		scatterView.Wheel(eargs[0].Get("deltaY").Float())
		return nil
	}))

	js.Global().Get("window").Call("addEventListener", "resize", js.FuncOf(func(this js.Value, eargs []js.Value) interface{} {
		w, h := scatterCanvas.Resize()
		scatterView.Resize(w, h)
		return nil
	}))

	scatterCanvas.SetCursor(scatterView.Cursor())
	return successResult("scatter view attached")
}

// attachNetwork binds the network view to a force-graph instance.
// Args: [forceGraph object, container element]
func attachNetwork(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return errorResult("requires 2 args: forceGraph (object), container (element)")
	}

	graphSolver = newForceGraphSolver(args[0], args[1])
	networkView = viz.NewNetworkView(graphSolver, viz.NetworkOptions{OnFocus: fireFocus})
	graphSolver.bind(networkView)
	networkView.SetData(visibleItems(), edgeSet)
	return successResult("network view attached")
}

// Helper: Create error result
func errorResult(msg string) interface{} {
	result := map[string]interface{}{
		"error": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}

// Helper: Create success result
func successResult(msg string) interface{} {
	result := map[string]interface{}{
		"success": msg,
	}
	jsonBytes, _ := json.Marshal(result)
	return string(jsonBytes)
}
