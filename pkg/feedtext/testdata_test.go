package feedtext

const googleNewsFeed = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
<channel>
<title>"trânsito" - Google Notícias</title>
<link>https://news.google.com/search?q=tr%C3%A2nsito</link>
<item>
<title>Trânsito intenso na Avenida Brasil - g1</title>
<link>https://news.google.com/rss/articles/CBMiAAA?oc=5</link>
<pubDate>Mon, 13 Oct 2025 14:05:00 GMT</pubDate>
<description>&lt;a href="https://news.google.com/rss/articles/CBMiAAA?oc=5" target="_blank"&gt;Trânsito intenso na Avenida Brasil&lt;/a&gt;&amp;nbsp;&amp;nbsp;&lt;font color="#6f6f6f"&gt;g1&lt;/font&gt;</description>
<source url="https://g1.globo.com">g1</source>
</item>
<item>
<title>Acidente &amp;amp; engarrafamento na Linha Vermelha</title>
<link>https://www.r7.com/rio/acidente</link>
<pubDate>ontem</pubDate>
<description>Veja mais em https://www.r7.com/rio</description>
</item>
<item>
<title></title>
<link>https://news.google.com/rss/articles/empty-title</link>
</item>
<item>
<title>Obras na Ponte Rio-Niterói</title>
<link>https://news.google.com/rss/articles/CBMiBBB</link>
<pubDate>Sun, 12 Oct 2025 09:30:00 GMT</pubDate>
<source url="https://odia.ig.com.br">O Dia</source>
</item>
</channel>
</rss>`

// malformedFeed has a bare ampersand that strict XML parsing rejects.
const malformedFeed = `<rss><channel>
<item><title><![CDATA[Chuva & vento no Rio]]></title><link>https://news.google.com/rss/articles/X1</link>
<pubDate>Tue, 14 Oct 2025 10:00:00 GMT</pubDate>
<description><![CDATA[<b>Alerta</b> da Defesa Civil & COR]]></description>
<source url='https://extra.globo.com'>Extra &amp; Cia</source></item>
<item><title>Sem fonte & sem data</title><link>https://news.google.com/rss/articles/X2</link></item>
</channel></rss>`
