package server

const indexHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Champion Duel</title>
<style>
	body{font-family:system-ui,sans-serif;background:#14161b;color:#e6e6e6;margin:0;padding:24px;}
	h1{margin:0 0 16px 0;font-size:22px;}
	.arena{display:grid;grid-template-columns:1fr 1fr;gap:16px;max-width:760px;}
	.card{background:#1f232b;border:1px solid #333a45;border-radius:8px;padding:12px 16px;}
	.card h2{margin:0 0 8px 0;font-size:18px;}
	.bar{height:8px;background:#333a45;border-radius:4px;overflow:hidden;}
	.bar > div{height:100%;background:#4caf50;transition:width .25s;}
	.controls{margin:16px 0;display:flex;gap:8px;}
	button{background:#3b6fd8;color:#fff;border:0;border-radius:6px;padding:8px 18px;font-size:15px;cursor:pointer;}
	button:disabled{background:#444;cursor:not-allowed;}
	#battle-log{max-width:760px;height:320px;overflow-y:auto;background:#101216;border:1px solid #333a45;border-radius:8px;padding:8px 12px;}
	#battle-log p{margin:4px 0;}
	footer{margin-top:12px;font-size:11px;color:#777;}
</style>
</head>
<body>
	<h1>Champion Duel</h1>
	<div class="arena">
		<div class="card" id="player-stats"></div>
		<div class="card" id="enemy-stats"></div>
	</div>
	<div class="controls">
		<button id="attack-button" disabled>Attack</button>
		<button id="reset-button">New match</button>
	</div>
	<div id="battle-log"></div>
	<footer>build {{BUILD_VERSION}} · <span id="status">connecting…</span></footer>
<script>
	const $ = (id)=>document.getElementById(id);
	const attackButton = $('attack-button');
	const battleLog = $('battle-log');
	let ws = null;
	let sessionID = sessionStorage.getItem('duel-session') || '';

	function escapeHTML(s){ return s.replace(/[&<>"']/g, c=>({'&':'&amp;','<':'&lt;','>':'&gt;','"':'&quot;',"'":'&#39;'}[c])); }
	function emphasize(s){ return escapeHTML(s).replace(/\*\*(.+?)\*\*/g, '<strong>$1</strong>'); }

	function renderCombatant(el, c){
		const pct = c.max_health ? Math.round(100*c.health/c.max_health) : 0;
		el.innerHTML = '<h2>'+escapeHTML(c.name)+'</h2>'+
			'<p>❤️ HP: <strong>'+c.health+'</strong> / '+c.max_health+'</p>'+
			'<div class="bar"><div style="width:'+pct+'%"></div></div>'+
			'<p>⚔️ Max Attack: '+c.attack_power+'</p>';
	}
	function renderStats(s){
		renderCombatant($('player-stats'), s.player);
		renderCombatant($('enemy-stats'), s.enemy);
	}
	function logMessage(msg){
		const p = document.createElement('p');
		p.innerHTML = emphasize(msg);
		battleLog.prepend(p);
	}
	function setStatus(t){ $('status').textContent = t; }
	function send(type){ if(ws && ws.readyState === WebSocket.OPEN){ ws.send(JSON.stringify({type:type})); } }

	function connect(){
		const proto = location.protocol === 'https:' ? 'wss' : 'ws';
		ws = new WebSocket(proto+'://'+location.host+'/ws'+(sessionID ? '?session='+encodeURIComponent(sessionID) : ''));
		ws.onopen = ()=> setStatus('connected');
		ws.onclose = ()=>{ setStatus('disconnected'); attackButton.disabled = true; };
		ws.onmessage = (ev)=>{
			const m = JSON.parse(ev.data);
			switch(m.type){
			case 'session': sessionID = m.data.id; sessionStorage.setItem('duel-session', sessionID); break;
			case 'state': renderStats(m.data); break;
			case 'log': logMessage(m.data); break;
			case 'clear': battleLog.innerHTML = ''; break;
			case 'attack_enabled': attackButton.disabled = !m.data; break;
			case 'error': setStatus(m.data); break;
			}
		};
	}
	attackButton.addEventListener('click', ()=> send('attack'));
	$('reset-button').addEventListener('click', ()=> send('reset'));
	connect();
</script>
</body>
</html>`
