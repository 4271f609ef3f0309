// seed_countries genera el script SQL que puebla el catálogo de países
// (ISO 3166-1 alpha-2) a partir del XML oficial Countries.xml.
//
// Uso: go run ./cmd/seed_countries [ruta/Countries.xml]
// Por defecto busca Countries.xml en el directorio actual.
// Escribe: migrations/000003_seed_countries.up.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type catalogo struct {
	Paises []pais `xml:"country"`
}

type pais struct {
	Code   string `xml:"code,attr"`
	Nombre string `xml:"name,attr"`
}

func main() {
	xmlPath := "Countries.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var cat catalogo
	dec := xml.NewDecoder(f)
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&cat); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	// Países únicos por código alpha-2
	byCode := make(map[string]string)
	for _, p := range cat.Paises {
		code := strings.ToUpper(strings.TrimSpace(p.Code))
		name := strings.TrimSpace(p.Nombre)
		if len(code) != 2 || name == "" {
			continue
		}
		byCode[code] = name
	}
	if len(byCode) == 0 {
		fmt.Fprintln(os.Stderr, "El XML no contiene países válidos")
		os.Exit(1)
	}

	// Ordenar por nombre para salida estable
	codes := make([]string, 0, len(byCode))
	for c := range byCode {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return byCode[codes[i]] < byCode[codes[j]] })

	// Ruta del script de salida (relativa al módulo)
	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "migrations", "000003_seed_countries.up.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Países de referencia (ISO 3166-1 alpha-2)\n")
	out.WriteString("-- Generado desde Countries.xml por cmd/seed_countries\n\n")
	out.WriteString("INSERT INTO countries (code, name) VALUES\n")
	for i, c := range codes {
		sep := ","
		if i == len(codes)-1 {
			sep = ""
		}
		fmt.Fprintf(out, "  ('%s', '%s')%s\n", c, escapeSQL(byCode[c]), sep)
	}
	out.WriteString("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name;\n")

	fmt.Printf("Generado %s: %d países\n", outPath, len(codes))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
