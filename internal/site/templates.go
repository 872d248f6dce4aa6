package site

// Starter site written by Scaffold. Page templates are html/template
// sources executed once with the owner's name and the page's base path.
// The data-* markers are the regions filled by the page controllers.

const navPartial = `<header class="nav">
  <div class="container nav-inner">
    <a class="brand" href="{{.Base}}">{{.Owner}}</a>
    <button class="menu-btn" type="button" data-menu-btn aria-expanded="false" aria-label="Menu">Menu</button>
    <nav class="nav-left" data-nav-left>
      <a href="{{.Base}}work/">Work</a>
      <a href="{{.Base}}publications/">Publications</a>
    </nav>
  </div>
</header>`

const footerPartial = `<footer class="footer">
  <div class="container">&copy; <span data-year></span> {{.Owner}}</div>
</footer>
<script src="{{.Base}}assets/js/folio.js" defer></script>`

const homeTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Owner}}</title>
  <link rel="stylesheet" href="{{.Base}}assets/css/site.css">
</head>
<body>
  {{template "nav" .}}
  <main>
    <section class="hero container reveal">
      <h1 data-site-headline></h1>
      <p class="lede" data-site-subheadline></p>
      <ul class="bullets" data-site-highlights></ul>
      <div class="tags" data-site-tags></div>
      <a class="btn" data-email-link href="#">Email me</a>
      <div class="mosaic" data-mosaic>
        <img data-mosaic-img src="{{.Base}}assets/img/placeholder.svg" alt="">
        <img data-mosaic-img src="{{.Base}}assets/img/placeholder.svg" alt="">
        <img data-mosaic-img src="{{.Base}}assets/img/placeholder.svg" alt="">
      </div>
    </section>
    <section class="container">
      <h2>Featured</h2>
      <div class="grid" data-featured-grid></div>
    </section>
  </main>
  {{template "footer" .}}
</body>
</html>
`

const workTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Work — {{.Owner}}</title>
  <link rel="stylesheet" href="{{.Base}}assets/css/site.css">
</head>
<body>
  {{template "nav" .}}
  <main class="container">
    <h1>Work</h1>
    <form class="toolbar" method="get">
      <input type="search" name="q" placeholder="Search projects" data-project-search>
      <span class="pill" data-active-filter>All</span>
    </form>
    <div class="filters" data-project-filters></div>
    <div class="grid" data-project-grid></div>
  </main>
  {{template "footer" .}}
</body>
</html>
`

const publicationsTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Publications — {{.Owner}}</title>
  <link rel="stylesheet" href="{{.Base}}assets/css/site.css">
</head>
<body>
  {{template "nav" .}}
  <main class="container">
    <h1>Publications</h1>
    <form class="toolbar" method="get">
      <input type="search" name="q" placeholder="Search publications" data-pub-search>
    </form>
    <div class="filters" data-pub-type-filters></div>
    <div class="filters" data-pub-year-filters></div>
    <div class="pubs" data-pub-list></div>
  </main>
  {{template "footer" .}}
</body>
</html>
`

const projectTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Project — {{.Owner}}</title>
  <link rel="stylesheet" href="{{.Base}}assets/css/site.css">
</head>
<body>
  {{template "nav" .}}
  <main>
    <div class="container">
      <h1 data-title>Project</h1>
      <p class="lede" data-impact></p>
      <div class="facts" data-facts></div>
      <div class="tags" data-tags></div>
      <div style="height: 14px"></div>
      <div class="gallery"><div class="gitem"><img data-hero-img src="{{.Base}}assets/img/placeholder.svg" alt=""></div></div>
      <div style="height: 14px"></div>
      <div class="work-grid">
        <section class="reveal"><h2>Outcomes</h2><div data-outcomes></div></section>
        <section class="reveal"><h2>Video</h2><div data-video></div></section>
        <section class="reveal"><h2>Gallery</h2><div data-gallery></div></section>
        <section class="reveal"><h2>Links</h2><div data-links></div></section>
      </div>
      <h2>Related</h2>
      <div data-related></div>
    </div>
  </main>
  {{template "footer" .}}
</body>
</html>
`

const cssContent = `:root { --fg: #1d1d1f; --muted: #6e6e73; --bg: #fff; --accent: #0a66c2; }
* { box-sizing: border-box; }
body { margin: 0; font: 16px/1.5 system-ui, sans-serif; color: var(--fg); background: var(--bg); }
.container { max-width: 1100px; margin: 0 auto; padding: 0 20px; }
.nav-inner { display: flex; align-items: center; gap: 16px; padding: 16px 20px; }
.nav-left { display: flex; gap: 16px; }
.menu-btn { display: none; }
@media (max-width: 700px) {
  .menu-btn { display: inline-block; }
  .nav-left { display: none; }
  .nav-left.is-open { display: flex; flex-direction: column; }
}
.grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 20px; }
.proj { display: block; color: inherit; text-decoration: none; border-radius: 12px; overflow: hidden; border: 1px solid #e5e5ea; }
.proj-media img { width: 100%; aspect-ratio: 16/10; object-fit: cover; display: block; }
.proj-body { padding: 12px 14px; }
.proj-meta { display: flex; justify-content: space-between; color: var(--muted); font-size: 14px; }
.filters { display: flex; flex-wrap: wrap; gap: 8px; margin: 12px 0; }
.filter { display: inline-block; border: 1px solid #d2d2d7; background: none; border-radius: 999px; padding: 4px 12px; color: inherit; text-decoration: none; }
.filter[data-active="true"] { background: var(--fg); color: var(--bg); }
.tag { display: inline-block; padding: 2px 10px; margin: 0 6px 6px 0; border-radius: 999px; background: #f2f2f7; font-size: 14px; }
.note { color: var(--muted); font-style: italic; }
.chiplink { display: inline-block; padding: 2px 10px; margin-right: 6px; border: 1px solid var(--accent); border-radius: 999px; color: var(--accent); text-decoration: none; }
.work-grid { display: grid; gap: 24px; }
.work-grid[data-cols="2"] { grid-template-columns: 1fr 1fr; }
.video { position: relative; aspect-ratio: 16/9; }
.video iframe { position: absolute; inset: 0; width: 100%; height: 100%; border: 0; }
.slideshow { position: relative; outline: none; }
.slide-stage { position: relative; }
.slide-img { width: 100%; display: block; border-radius: 12px; }
.slide-arrow { position: absolute; top: 50%; transform: translateY(-50%); background: rgba(0,0,0,.4); border: 0; border-radius: 50%; width: 36px; height: 36px; }
.slide-arrow svg { width: 20px; height: 20px; stroke: #fff; fill: none; stroke-width: 2; }
.slide-arrow.prev { left: 8px; }
.slide-arrow.next { right: 8px; }
.slide-thumbs { display: flex; gap: 6px; margin-top: 8px; }
.thumb { padding: 0; border: 2px solid transparent; background: none; }
.thumb.is-active { border-color: var(--accent); }
.thumb img { width: 64px; height: 40px; object-fit: cover; display: block; }
.js .reveal { opacity: 0; transform: translateY(12px); transition: opacity .5s, transform .5s; }
.js .reveal.is-on { opacity: 1; transform: none; }
`

// jsContent drives the built pages in the browser: the mobile nav, the
// deferred reveal observer and the live slideshows served by folio serve.
const jsContent = `(function () {
  "use strict";

  var btn = document.querySelector("[data-menu-btn]");
  var nav = document.querySelector("[data-nav-left]");
  if (btn && nav) {
    btn.addEventListener("click", function () {
      var open = nav.classList.toggle("is-open");
      btn.setAttribute("aria-expanded", String(open));
    });
  }

  function revealAll(els) {
    els.forEach(function (el) { el.classList.add("is-on"); });
  }

  var pending = Array.prototype.slice.call(document.querySelectorAll(".reveal:not(.is-on)"));
  if (pending.length && document.documentElement.classList.contains("js")) {
    if (!("IntersectionObserver" in window)) {
      revealAll(pending);
    } else {
      var io = new IntersectionObserver(function (entries) {
        entries.forEach(function (e) {
          if (e.isIntersecting) {
            e.target.classList.add("is-on");
            io.unobserve(e.target);
          }
        });
      }, { rootMargin: "40px 0px", threshold: 0.08 });
      pending.forEach(function (el) { io.observe(el); });
    }
  }

  function Show(el) {
    this.el = el;
    this.img = el.querySelector(".slide-img");
    this.cap = el.querySelector(".slide-cap");
    this.thumbs = Array.prototype.slice.call(el.querySelectorAll(".thumb"));
    this.index = 0;
    this.thumbs.forEach(function (t, i) {
      if (t.classList.contains("is-active")) { this.index = i; }
    }, this);
    this.sock = null;
  }

  Show.prototype.show = function (index, alt, caption) {
    var t = this.thumbs[index];
    if (!t) { return; }
    var src = t.querySelector("img");
    this.img.src = src.getAttribute("src");
    this.img.alt = alt !== undefined ? alt : src.getAttribute("alt");
    if (caption === undefined) { caption = t.getAttribute("data-caption") || ""; }
    this.cap.textContent = caption;
    this.cap.hidden = caption === "";
    this.thumbs.forEach(function (th, i) { th.classList.toggle("is-active", i === index); });
    this.index = index;
  };

  Show.prototype.send = function (msg) {
    if (this.sock && this.sock.readyState === WebSocket.OPEN) {
      this.sock.send(JSON.stringify(msg));
      return true;
    }
    var n = this.thumbs.length;
    if (!n) { return false; }
    if (msg.type === "next") { this.show((this.index + 1) % n); }
    if (msg.type === "prev") { this.show((this.index - 1 + n) % n); }
    if (msg.type === "goto") { this.show(msg.index); }
    if (msg.type === "key" && msg.key === "ArrowRight") { this.show((this.index + 1) % n); }
    if (msg.type === "key" && msg.key === "ArrowLeft") { this.show((this.index - 1 + n) % n); }
    return false;
  };

  Show.prototype.connect = function () {
    var slug = this.el.getAttribute("data-slideshow");
    if (!slug || !/^https?:$/.test(location.protocol) || !("WebSocket" in window)) { return; }
    var url = (location.protocol === "https:" ? "wss://" : "ws://") + location.host +
      "/ws/slideshow/" + encodeURIComponent(slug);
    if (this.el.closest(".banner")) { url += "?banner=1"; }
    var self = this;
    var sock = new WebSocket(url);
    sock.onmessage = function (ev) {
      var msg = JSON.parse(ev.data);
      if (msg.type === "state" && msg.state) {
        self.show(msg.state.index, msg.state.slide.alt, msg.state.slide.caption);
      }
    };
    sock.onclose = function () { self.sock = null; };
    this.sock = sock;
  };

  Show.prototype.bind = function () {
    var self = this, el = this.el;
    var prev = el.querySelector(".slide-arrow.prev");
    var next = el.querySelector(".slide-arrow.next");
    if (prev) { prev.addEventListener("click", function () { self.send({ type: "prev" }); }); }
    if (next) { next.addEventListener("click", function () { self.send({ type: "next" }); }); }
    this.thumbs.forEach(function (t) {
      t.addEventListener("click", function () {
        self.send({ type: "goto", index: Number(t.getAttribute("data-index")) });
      });
    });
    el.addEventListener("keydown", function (e) {
      if (e.key === "ArrowLeft" || e.key === "ArrowRight") {
        e.preventDefault();
        self.send({ type: "key", key: e.key });
      }
    });
    el.addEventListener("mouseenter", function () { self.send({ type: "hover", on: true }); });
    el.addEventListener("mouseleave", function () { self.send({ type: "hover", on: false }); });
    el.addEventListener("focusin", function () { self.send({ type: "focus", on: true }); });
    el.addEventListener("focusout", function (e) {
      if (!el.contains(e.relatedTarget)) { self.send({ type: "focus", on: false }); }
    });
    var stage = el.querySelector(".slide-stage");
    if (stage) {
      stage.addEventListener("pointerdown", function (e) { self.send({ type: "swipe_start", x: e.clientX, y: e.clientY }); });
      stage.addEventListener("pointerup", function (e) { self.send({ type: "swipe_end", x: e.clientX, y: e.clientY }); });
      stage.addEventListener("pointercancel", function () { self.send({ type: "swipe_cancel" }); });
    }
  };

  Array.prototype.forEach.call(document.querySelectorAll("[data-slideshow]"), function (el) {
    if (!el.querySelector(".slide-img")) { return; }
    var s = new Show(el);
    s.bind();
    s.connect();
  });
})();
`

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 160 100"><rect width="160" height="100" fill="#e5e5ea"/></svg>
`

const siteJSON = `{
  "headline": "Hello, and welcome.",
  "subheadline": "I build things.",
  "highlights": ["Shipped an example project"],
  "focusTags": ["Robotics", "Web"],
  "contact": { "email": "me@example.com" },
  "featuredProjectSlugs": ["example"]
}
`

const projectsJSON = `{
  "projects": [
    {
      "slug": "example",
      "title": "Example project",
      "image": "placeholder.svg",
      "tags": ["Web"],
      "year": 2024,
      "impact": "Replace this with your first project.",
      "role": "Author",
      "orgs": [],
      "outcomes": ["Edit **assets/data/projects.json** to add more."],
      "links": [],
      "gallery": []
    }
  ]
}
`

const publicationsJSON = `{
  "publications": []
}
`
