package celebration

import "html/template"

type pageData struct {
	Name            string
	MainMessage     string
	LotteryType     string
	ApplicationCode string
	Date            string
	ShareText       string
	SequenceNumber  int
	WaitingTime     string
}

var pageTemplate = template.Must(template.New("celebration").Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>🎉 中签庆祝 - {{.Name}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }

body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', 'PingFang SC', 'Hiragino Sans GB', 'Microsoft YaHei', sans-serif;
    background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
    min-height: 100vh;
    overflow-x: hidden;
    position: relative;
}

.firework {
    position: absolute;
    width: 6px;
    height: 6px;
    border-radius: 50%;
    animation: firework 2s ease-out infinite;
}
@keyframes firework {
    0% { opacity: 1; transform: scale(0) translateY(0); }
    50% { opacity: 1; transform: scale(1) translateY(-100px); }
    100% { opacity: 0; transform: scale(0) translateY(-200px); }
}

.confetti {
    position: absolute;
    width: 8px;
    height: 8px;
    background: #ff6b6b;
    animation: confetti 3s ease-in-out infinite;
}
@keyframes confetti {
    0% { transform: translateY(-100vh) rotate(0deg); opacity: 1; }
    100% { transform: translateY(100vh) rotate(720deg); opacity: 0; }
}

.sparkle {
    position: absolute;
    width: 4px;
    height: 4px;
    background: #ffd700;
    border-radius: 50%;
    animation: sparkle 1.5s ease-in-out infinite;
}
@keyframes sparkle {
    0%, 100% { opacity: 0; transform: scale(0); }
    50% { opacity: 1; transform: scale(1); }
}

.container {
    max-width: 800px;
    margin: 0 auto;
    padding: 2rem;
    text-align: center;
    position: relative;
    z-index: 10;
}

.celebration-card {
    background: rgba(255, 255, 255, 0.95);
    border-radius: 20px;
    padding: 3rem 2rem;
    margin: 2rem 0;
    box-shadow: 0 20px 40px rgba(0, 0, 0, 0.1);
    backdrop-filter: blur(10px);
    animation: cardAppear 0.8s ease-out;
}
@keyframes cardAppear {
    from { opacity: 0; transform: translateY(50px) scale(0.9); }
    to { opacity: 1; transform: translateY(0) scale(1); }
}

.main-title {
    font-size: 2.5rem;
    color: #2c3e50;
    margin-bottom: 1rem;
    text-shadow: 2px 2px 4px rgba(0, 0, 0, 0.1);
    animation: pulse 2s ease-in-out infinite;
}
@keyframes pulse {
    0%, 100% { transform: scale(1); }
    50% { transform: scale(1.05); }
}

.lottery-type {
    font-size: 1.5rem;
    color: #8e44ad;
    margin-bottom: 2rem;
    font-weight: 600;
}

.details-grid {
    display: grid;
    grid-template-columns: repeat(auto-fit, minmax(250px, 1fr));
    gap: 1.5rem;
    margin: 2rem 0;
}

.detail-card {
    background: linear-gradient(135deg, #f8f9fa, #e9ecef);
    border-radius: 15px;
    padding: 1.5rem;
    border: 2px solid #dee2e6;
    transition: transform 0.3s ease;
}
.detail-card:hover {
    transform: translateY(-5px);
    box-shadow: 0 10px 20px rgba(0, 0, 0, 0.1);
}
.detail-label {
    font-size: 0.9rem;
    color: #6c757d;
    margin-bottom: 0.5rem;
    font-weight: 500;
}
.detail-value {
    font-size: 1.2rem;
    color: #2c3e50;
    font-weight: 600;
}

.action-buttons {
    margin-top: 3rem;
    display: flex;
    gap: 1rem;
    justify-content: center;
    flex-wrap: wrap;
}
.btn {
    padding: 12px 30px;
    border: none;
    border-radius: 25px;
    font-size: 1rem;
    font-weight: 600;
    cursor: pointer;
    transition: all 0.3s ease;
    text-decoration: none;
    display: inline-block;
}
.btn-primary {
    background: linear-gradient(135deg, #667eea, #764ba2);
    color: white;
}
.btn-secondary {
    background: linear-gradient(135deg, #ffecd2, #fcb69f);
    color: #8e44ad;
}
.btn:hover {
    transform: translateY(-2px);
    box-shadow: 0 8px 15px rgba(0, 0, 0, 0.2);
}

.footer {
    margin-top: 3rem;
    color: rgba(255, 255, 255, 0.8);
    font-size: 0.9rem;
}

@media (max-width: 600px) {
    .container { padding: 1rem; }
    .main-title { font-size: 2rem; }
    .details-grid { grid-template-columns: 1fr; }
    .action-buttons { flex-direction: column; align-items: center; }
}
</style>
</head>
<body>
<div id="celebration-effects"></div>

<div class="container">
    <div class="celebration-card">
        <h1 class="main-title">{{.MainMessage}}</h1>
        <div class="lottery-type">{{.LotteryType}}</div>

        <div class="details-grid">
            <div class="detail-card">
                <div class="detail-label">申请编码</div>
                <div class="detail-value">{{.ApplicationCode}}</div>
            </div>

            <div class="detail-card">
                <div class="detail-label">中签日期</div>
                <div class="detail-value">{{.Date}}</div>
            </div>

            {{if .SequenceNumber}}
            <div class="detail-card">
                <div class="detail-label">序号</div>
                <div class="detail-value">{{.SequenceNumber}}</div>
            </div>
            {{end}}

            {{if .WaitingTime}}
            <div class="detail-card">
                <div class="detail-label">排队时间</div>
                <div class="detail-value">{{.WaitingTime}}</div>
            </div>
            {{end}}
        </div>

        <div class="action-buttons">
            <button class="btn btn-primary" onclick="shareNews()">📱 分享好消息</button>
            <button class="btn btn-secondary" onclick="printPage()">🖨️ 打印纪念</button>
        </div>
    </div>

    <div class="footer">
        <p>🎊 祝贺您获得北京新能源小客车指标！🎊</p>
        <p>请及时关注后续购车和上牌流程</p>
    </div>
</div>

<script>
function createCelebrationEffects() {
    var effects = document.getElementById('celebration-effects');

    for (var i = 0; i < 20; i++) {
        var firework = document.createElement('div');
        firework.className = 'firework';
        firework.style.left = Math.random() * 100 + '%';
        firework.style.background = 'hsl(' + Math.random() * 360 + ', 70%, 60%)';
        firework.style.animationDelay = Math.random() * 2 + 's';
        effects.appendChild(firework);
    }

    for (var i = 0; i < 30; i++) {
        var confetti = document.createElement('div');
        confetti.className = 'confetti';
        confetti.style.left = Math.random() * 100 + '%';
        confetti.style.background = 'hsl(' + Math.random() * 360 + ', 70%, 60%)';
        confetti.style.animationDelay = Math.random() * 3 + 's';
        confetti.style.animationDuration = (Math.random() * 2 + 2) + 's';
        effects.appendChild(confetti);
    }

    for (var i = 0; i < 50; i++) {
        var sparkle = document.createElement('div');
        sparkle.className = 'sparkle';
        sparkle.style.left = Math.random() * 100 + '%';
        sparkle.style.top = Math.random() * 100 + '%';
        sparkle.style.animationDelay = Math.random() * 1.5 + 's';
        effects.appendChild(sparkle);
    }
}

function shareNews() {
    var shareText = {{.ShareText}};

    if (navigator.share) {
        navigator.share({
            title: '🎉 北京车牌中签啦！',
            text: shareText,
            url: window.location.href
        });
    } else {
        navigator.clipboard.writeText(shareText).then(function() {
            alert('好消息已复制到剪贴板！快去分享吧！');
        });
    }
}

function printPage() {
    window.print();
}

document.addEventListener('DOMContentLoaded', function() {
    createCelebrationEffects();

    setTimeout(function() {
        document.querySelector('.celebration-card').style.transform = 'scale(1.02)';
        setTimeout(function() {
            document.querySelector('.celebration-card').style.transform = 'scale(1)';
        }, 200);
    }, 1000);
});
</script>
</body>
</html>
`))
