package main

// indexHTML is the whole front end: pick a round, watch it stream.
const indexHTML = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>snake replays</title>
<style>
  body { background:#0a0a0f; color:#ccc; font-family:monospace; margin:20px; }
  a { color:#8cf; cursor:pointer; }
  table { border-collapse:collapse; }
  td, th { padding:2px 12px; text-align:left; }
  canvas { border:1px solid #334; margin-top:12px; display:block; }
  #status { color:#778; margin-top:6px; }
</style>
</head>
<body>
<h3>snake replays</h3>
<table id="rounds"><thead>
<tr><th>round</th><th>ticks</th><th>you</th><th>ai</th><th>outcome</th><th></th></tr>
</thead><tbody></tbody></table>
<canvas id="board" width="600" height="400" hidden></canvas>
<div id="status"></div>
<script>
const tbody = document.querySelector('#rounds tbody');
const canvas = document.getElementById('board');
const ctx = canvas.getContext('2d');
const status = document.getElementById('status');
let ws = null;

fetch('/api/rounds').then(r => r.json()).then(data => {
  for (const round of data.rounds) {
    const tr = document.createElement('tr');
    tr.innerHTML =
      '<td>' + round.round_id.slice(0, 8) + '</td>' +
      '<td>' + round.ticks + '</td>' +
      '<td>' + round.player_score + '</td>' +
      '<td>' + round.ai_score + '</td>' +
      '<td>' + round.outcome + '</td>' +
      '<td><a>play</a></td>';
    tr.querySelector('a').onclick = () => play(round.round_id);
    tbody.appendChild(tr);
  }
});

function play(id) {
  if (ws) ws.close();
  canvas.hidden = false;
  const proto = location.protocol === 'https:' ? 'wss' : 'ws';
  ws = new WebSocket(proto + '://' + location.host + '/api/rounds/' + id + '/live');
  ws.onmessage = ev => draw(JSON.parse(ev.data));
  ws.onclose = () => { status.textContent = 'replay finished'; };
  status.textContent = 'playing ' + id.slice(0, 8);
}

function draw(f) {
  const cell = Math.min(canvas.width / f.cols, canvas.height / f.rows);
  ctx.fillStyle = '#0a0a0f';
  ctx.fillRect(0, 0, canvas.width, canvas.height);
  ctx.fillStyle = '#ffe44d';
  ctx.fillRect(f.food.x * cell, f.food.y * cell, cell, cell);
  for (const s of f.snakes) {
    ctx.fillStyle = s.name === 'player' ? '#00ff88' : '#ff3366';
    if (!s.alive) ctx.fillStyle = '#555';
    for (const p of s.body) ctx.fillRect(p.x * cell, p.y * cell, cell, cell);
  }
  status.textContent = 'tick ' + f.tick + ' · you ' +
    (f.snakes[0] ? f.snakes[0].score : 0) + ' · ai ' +
    (f.snakes[1] ? f.snakes[1].score : 0);
}
</script>
</body>
</html>
`
