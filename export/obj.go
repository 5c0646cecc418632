package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/astei/schem2mesh/mesh"
)

// materialOrder returns the distinct materials in first-appearance order, so
// output is deterministic for a deterministic quad list.
func materialOrder(quads []mesh.Quad) []string {
	seen := make(map[string]bool)
	var order []string
	for _, q := range quads {
		if !seen[q.Material] {
			seen[q.Material] = true
			order = append(order, q.Material)
		}
	}
	return order
}

// OBJ writes Wavefront OBJ geometry: quads grouped by material under usemtl
// directives, vertices and texture coordinates with 1-based face indices.
// mtllib names the companion material library written by MTL; pass "" to
// omit the reference.
func OBJ(w io.Writer, quads []mesh.Quad, mtllib string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# schem2mesh OBJ export")
	if mtllib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtllib)
	}
	fmt.Fprintln(bw)

	byMaterial := make(map[string][]mesh.Quad)
	for _, q := range quads {
		byMaterial[q.Material] = append(byMaterial[q.Material], q)
	}

	index := uint32(1)
	for _, material := range materialOrder(quads) {
		fmt.Fprintf(bw, "usemtl %s\n", material)
		for _, q := range byMaterial[material] {
			for _, v := range q.Vertices {
				fmt.Fprintf(bw, "v %g %g %g\n", v.X(), v.Y(), v.Z())
			}
			for _, uv := range q.UVs {
				fmt.Fprintf(bw, "vt %g %g\n", uv.X(), uv.Y())
			}
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d %d/%d\n",
				index, index, index+1, index+1, index+2, index+2, index+3, index+3)
			index += 4
		}
	}
	return bw.Flush()
}

// MTL writes the material library for a quad list: one newmtl block per
// material with diffuse color from the palette. Transparent materials get a
// dissolve value below 1.
func MTL(w io.Writer, quads []mesh.Quad, palette *Palette) error {
	if palette == nil {
		palette = NewPalette()
	}
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "# schem2mesh materials")
	fmt.Fprintln(bw)

	for _, material := range materialOrder(quads) {
		c := palette.Color(material)
		fmt.Fprintf(bw, "newmtl %s\n", material)
		fmt.Fprintf(bw, "Kd %g %g %g\n", c.R, c.G, c.B)
		fmt.Fprintln(bw, "Ka 0.2 0.2 0.2")
		fmt.Fprintln(bw, "Ks 0.0 0.0 0.0")
		fmt.Fprintln(bw, "Ns 10.0")
		fmt.Fprintf(bw, "d %g\n", c.A)
		fmt.Fprintln(bw, "illum 2")
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}
