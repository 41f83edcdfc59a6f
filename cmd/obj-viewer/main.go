package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"

	mgl "github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

type (
	float = float32
	vec2  = mgl.Vec2
	vec3  = mgl.Vec3
	vec4  = mgl.Vec4
	mat4  = mgl.Mat4
)

var (
	window_width  = flag.Int("width", 800, "initial window width")
	window_height = flag.Int("height", 600, "initial window height")
	fit_mesh      = flag.Bool("fit", false, "center the mesh and scale it to a unit box")
	checker       = flag.Bool("checker", false, "bind a checkerboard texture to show texture coordinates")
	use_gpu       = flag.Bool("gpu", false, "start with the GPU rasterizer (no depth buffer)")
	cpu_profile   = flag.String("cpuprofile", "", "write cpu profile to `file`")
	mem_profile   = flag.String("memprofile", "", "write memory profile to `file`")
	pprof_addr    = flag.String("pprof", "", "serve net/http/pprof on `addr`, e.g. localhost:6060")
)

// max_warnings caps how many loader warnings are logged at startup.
const max_warnings = 20

func usage(fs *flag.FlagSet) func() {
	return func() {
		fmt.Fprintln(fs.Output(), "Usage: obj-viewer <obj_file.obj>")
		fs.PrintDefaults()
	}
}

// parse_args parses the flags in args and returns the single OBJ path.
// It prints the usage to fs.Output() when there is not exactly one path.
func parse_args(fs *flag.FlagSet, args []string) (string, bool) {
	fs.Usage = usage(fs)
	if err := fs.Parse(args); err != nil {
		return "", false
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return "", false
	}
	return fs.Arg(0), true
}

func main() {
	flag.CommandLine.SetOutput(os.Stdout)
	path, ok := parse_args(flag.CommandLine, os.Args[1:])
	if !ok {
		os.Exit(1)
	}

	if *cpu_profile != "" {
		f, err := os.Create(*cpu_profile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	if *mem_profile != "" {
		defer func() {
			f, err := os.Create(*mem_profile)
			if err != nil {
				log.Fatal("could not create memory profile: ", err)
			}
			defer f.Close()
			runtime.GC() // get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Fatal("could not write memory profile: ", err)
			}
		}()
	}

	if *pprof_addr != "" {
		go func() {
			log.Println(http.ListenAndServe(*pprof_addr, nil))
		}()
	}

	mesh, err := load_obj_file(path)
	if err != nil {
		log.Fatal(err)
	}

	for i, w := range mesh.warnings {
		if i == max_warnings {
			log.Printf("%s: %d more warnings", path, len(mesh.warnings)-max_warnings)
			break
		}
		log.Printf("%s: %s", path, w)
	}

	if *fit_mesh {
		mesh.fit()
	}

	log.Printf("loaded %s: %d vertices, %d normals, %d texcoords, %d triangles (%d invalid)",
		path,
		mesh.vertex_count(),
		mesh.normal_count(),
		mesh.tex_coord_count(),
		mesh.triangle_count(),
		mesh.invalid_triangles(),
	)

	shader, err := ebiten.NewShader([]byte(shader_src))
	if err != nil {
		log.Fatal("could not compile shader: ", err)
	}

	texture := new_white_texture()
	if *checker {
		texture = new_checker_texture()
	}

	g := new_game(mesh, texture, shader)
	g.ctx.use_cpu = !*use_gpu

	ebiten.SetWindowTitle("OBJ Viewer")
	ebiten.SetWindowSize(*window_width, *window_height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
