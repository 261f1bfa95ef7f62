// Command collagecheck validates a saved collage file and prints a summary.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"collage-maker/internal/catalog"
	"collage-maker/internal/scene"
)

func main() {
	collagePath := flag.String("file", "", "Path to saved collage (.collage)")
	catalogPath := flag.String("catalog", "", "Optional catalog JSON to cross-check furniture IDs")
	flag.Parse()

	if *collagePath == "" {
		fmt.Println("Usage: collagecheck -file <path.collage> [-catalog <catalog.json>]")
		os.Exit(1)
	}

	data, err := os.ReadFile(*collagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read collage: %v\n", err)
		os.Exit(1)
	}

	st, err := scene.UnmarshalState(data)
	if err == nil {
		// Full validation, including the version gate and range checks.
		_, err = scene.FromCanvasState(st)
	}
	if err != nil {
		var verr *scene.ValidationError
		if errors.As(err, &verr) && verr.Field != "" {
			fmt.Fprintf(os.Stderr, "Invalid collage: field %q: %s\n", verr.Field, verr.Reason)
		} else {
			fmt.Fprintf(os.Stderr, "Invalid collage: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Version: %s\n", st.Version)
	fmt.Printf("Canvas:  %.0fx%.0f\n", st.Width, st.Height)
	if st.Title != "" {
		fmt.Printf("Title:   %s\n", st.Title)
	}
	fmt.Printf("Items:   %d\n", len(st.Items))

	for _, item := range st.Items {
		flip := ""
		if item.IsFlipped {
			flip = " flipped"
		}
		fmt.Printf("  %-10s furniture=%s at (%.0f,%.0f) %.0fx%.0f z=%d%s temp=%dK bright=%d sat=%d\n",
			item.ID, item.FurnitureID, item.PositionX, item.PositionY,
			item.Width, item.Height, item.ZOrder, flip,
			item.ColorTemperature, item.Brightness, item.Saturation)
	}

	if *catalogPath != "" {
		cat := catalog.NewCatalog()
		if err := cat.LoadFile(*catalogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load catalog: %v\n", err)
			os.Exit(1)
		}
		missing := 0
		for _, item := range st.Items {
			if cat.Get(item.FurnitureID) == nil {
				fmt.Printf("  WARNING: %s references unknown furniture %q\n", item.ID, item.FurnitureID)
				missing++
			}
		}
		if missing == 0 {
			fmt.Println("All furniture IDs resolve against the catalog.")
		} else {
			fmt.Printf("%d item(s) reference furniture missing from the catalog.\n", missing)
			os.Exit(2)
		}
	}
}
