package server

import (
	"bytes"
	"fmt"
	"html/template"
)

type pageVars struct {
	Ratios  []string
	Current string
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

func renderPage(vars pageVars) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, vars); err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}
	return buf.Bytes(), nil
}

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>posterkit</title>
<style>
body { font-family: sans-serif; margin: 0; padding: 16px; background: #f4f4f4; }
main { max-width: 480px; margin: 0 auto; }
#error { display: none; background: #fde2e2; color: #8a1c1c; padding: 8px; margin-bottom: 12px; }
#error button { float: right; }
.ratios button.active { font-weight: bold; }
#stage { position: relative; display: inline-block; max-width: 100%; }
#stage img { display: block; max-width: 100%; }
#box { position: absolute; border: 2px solid #fff; box-shadow: 0 0 0 9999px rgba(0,0,0,.45); pointer-events: none; }
#composed { display: none; }
#composed iframe { border: 0; width: 100%; }
label { display: block; margin-top: 8px; }
input[type=range] { width: 100%; }
</style>
</head>
<body>
<main>
<div id="error"><button type="button" id="dismiss">&times;</button><span id="error-message"></span></div>

<input type="file" id="file" accept="image/*" capture="environment">

<div class="ratios">
{{range .Ratios}}<button type="button" data-ratio="{{.}}"{{if eq . $.Current}} class="active"{{end}}>{{.}}</button>
{{end}}</div>

<section id="cropping">
  <div id="stage"><img id="source" alt=""><div id="box"></div></div>
  <label>X <input type="range" id="ox" min="-50" max="50" step="0.5" value="0"></label>
  <label>Y <input type="range" id="oy" min="-50" max="50" step="0.5" value="0"></label>
  <label>Zoom <input type="range" id="zoom" min="1" max="4" step="0.05" value="1"></label>
  <button type="button" id="suggest">Suggest</button>
  <button type="button" id="crop">Crop</button>
</section>

<section id="composed">
  <iframe id="view" title="poster"></iframe>
  <button type="button" id="recrop">Crop again</button>
  <button type="button" id="export">Download</button>
</section>
</main>
<script>
(function () {
  var state = null;
  var $ = function (id) { return document.getElementById(id); };

  function render(s) {
    state = s;
    var err = s.error;
    $("error").style.display = err ? "block" : "none";
    $("error-message").textContent = err ? err.message : "";
    document.querySelectorAll("[data-ratio]").forEach(function (b) {
      b.classList.toggle("active", b.dataset.ratio === s.ratio);
    });
    $("cropping").style.display = s.phase === "composed" ? "none" : "block";
    $("composed").style.display = s.phase === "composed" ? "block" : "none";
    if (s.source && $("source").dataset.id !== s.source.id) {
      $("source").dataset.id = s.source.id;
      $("source").src = "/api/source?id=" + encodeURIComponent(s.source.id);
    }
    $("ox").value = s.offset.x; $("oy").value = s.offset.y; $("zoom").value = s.zoom || 1;
    drawBox();
    if (s.view) {
      $("view").style.height = s.view.height + "px";
      $("view").src = "/view?g=" + s.generation;
    }
  }

  function drawBox() {
    var box = $("box"), img = $("source");
    if (!state || !state.region || !state.source || !state.source.width) { box.style.display = "none"; return; }
    var k = img.clientWidth / state.source.width, r = state.region;
    box.style.display = "block";
    box.style.left = (r.x * k) + "px"; box.style.top = (r.y * k) + "px";
    box.style.width = (r.width * k) + "px"; box.style.height = (r.height * k) + "px";
  }

  function handle(res) {
    return res.json().then(function (body) { render(body.state || body); });
  }

  function post(path, body) {
    var opts = { method: "POST" };
    if (body !== undefined) {
      opts.headers = { "Content-Type": "application/json" };
      opts.body = JSON.stringify(body);
    }
    return fetch(path, opts).then(handle);
  }

  $("file").addEventListener("change", function () {
    var fd = new FormData();
    if (this.files.length) { fd.append("file", this.files[0]); }
    fetch("/api/upload", { method: "POST", body: fd }).then(handle);
  });
  document.querySelectorAll("[data-ratio]").forEach(function (b) {
    b.addEventListener("click", function () { post("/api/ratio", { ratio: b.dataset.ratio }); });
  });
  ["ox", "oy", "zoom"].forEach(function (id) {
    $(id).addEventListener("change", function () {
      post("/api/adjust", {
        offset: { x: parseFloat($("ox").value), y: parseFloat($("oy").value) },
        zoom: parseFloat($("zoom").value)
      });
    });
  });
  $("source").addEventListener("load", drawBox);
  $("suggest").addEventListener("click", function () { post("/api/suggest"); });
  $("crop").addEventListener("click", function () { post("/api/crop"); });
  $("recrop").addEventListener("click", function () { post("/api/recrop"); });
  $("dismiss").addEventListener("click", function () { post("/api/dismiss"); });
  $("export").addEventListener("click", function () {
    fetch("/api/export", { method: "POST" }).then(function (res) {
      if (!res.ok) { return handle(res); }
      return res.blob().then(function (blob) {
        var a = document.createElement("a");
        a.href = URL.createObjectURL(blob);
        a.download = "poster.png";
        a.click();
        URL.revokeObjectURL(a.href);
        return fetch("/api/state").then(handle);
      });
    });
  });

  fetch("/api/state").then(handle);
})();
</script>
</body>
</html>
`
