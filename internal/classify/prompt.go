package classify

import "fmt"

const systemPrompt = `You are a financial news evaluator. Analyze the headline based ONLY on the user's criteria. Your entire response MUST be ONLY a single valid JSON object in the specified format: {"significant": boolean, "category": "CategoryString", "reason": "Brief ReasonString"}. Do not include explanations, apologies, markdown, or any text outside the JSON structure.`

const promptTemplate = `**TASK:** Analyze the financial news headline below. Determine if it is significant market news based ONLY on the provided criteria. Output a JSON object containing your decision, the primary category, and a brief reason.

**HEADLINE:** %q

**CRITERIA FOR SIGNIFICANCE (Set "significant": true ONLY if the headline CLEARLY meets one or more criteria below):**
*   **IMPACT:** News highly likely to cause noticeable (>1-2%% for major assets) short-term movement or change sentiment in broad markets (US stocks, major indices), specific sectors (Tech, Energy), major currencies (EUR/USD, USD/JPY), major cryptos (BTC, ETH > +/- 5%%), or key commodities (Oil, Gold).
*   **SOURCE:** Direct, official policy announcements (Fed/FOMC rate decisions/statements, ECB/BOJ policy shifts, White House statements on major economy/trade actions, OPEC decisions, major international summit outcomes like G7/G20 agreements).
*   **DATA RELEASES:** Key, market-moving economic indicators (CPI, NFP/Jobs Report, Core PCE, GDP growth/revision, ISM PMI - especially if significantly deviating from consensus expectations).
*   **MAJOR COMPANY NEWS:** Earnings reports/guidance with significant surprises (large beat/miss) for VERY large cap companies (FAANG+, NVDA, TSLA, MSFT, JPM, etc.). Major M&A (> $10B or involving large caps). Major product launches with clear, broad market implications.
*   **GEOPOLITICAL EVENTS:** Major escalations/de-escalations in conflicts DIRECTLY impacting markets (oil supply disruptions, major new sanctions on large economies, key trade deal breakthroughs/collapses).
*   **CRYPTO:** Major regulatory actions with broad implications (SEC lawsuits against major exchanges, spot ETF approvals/rejections), major exchange solvency crises/hacks, >10%% moves in BTC/ETH driven by verifiable, specific news.
*   **FOREX:** Direct central bank interventions targeting currency rates, unexpected major policy shifts clearly impacting currency pairs (>1%% move).

**CRITERIA FOR IGNORING (Set "significant": false if the headline fits ANY of these, EVEN IF IT SEEMS VAGUELY RELATED TO A SIGNIFICANT TOPIC):**
*   **Routine Summaries:** Daily/weekly market open/close reports, futures/pre-market action without a specific major news driver. General "market update" articles.
*   **Minor News:** Small/mid-cap company news (personnel, partnerships, minor product updates, local events). Most news about companies outside the top ~50 by market cap unless M&A related.
*   **Analyst Ratings:** IGNORE almost all individual analyst upgrades/downgrades/price target changes.
*   **Opinion/Commentary:** Opinion pieces, interviews unless revealing new, concrete policy or data. Predictions or forecasts without specific triggers. "Expert says X..." articles. Listicles. Educational content.
*   **Vague Geopolitics:** Routine political commentary, minor diplomatic events, ongoing situations without a clear, new market-moving development in the headline.
*   **Standard Volatility:** Normal price fluctuations without a specific, major news catalyst mentioned in the headline ("Bitcoin dips slightly", "Stocks edge lower").
*   **Promotional Content:** Sponsored content, PR releases.

**CATEGORIES (Choose ONE primary category):**
"Stocks", "Economy", "Forex", "Crypto", "Geopolitics", "Commodities", "General"

**OUTPUT FORMAT:**
CRITICAL: Output ONLY a single, valid JSON object: {"significant": boolean, "category": "ChosenCategoryString", "reason": "Brief justification (2-5 words)"}. No text before or after it.

**EXAMPLES:**
*   "Fed holds rates steady, signals potential cuts later this year." -> {"significant": true, "category": "Economy", "reason": "FOMC rate decision/outlook"}
*   "Apple shares fall 5%% after reporting weaker iPhone sales." -> {"significant": true, "category": "Stocks", "reason": "AAPL earnings miss"}
*   "Oil prices jump 3%% after OPEC+ announces surprise production cut" -> {"significant": true, "category": "Commodities", "reason": "OPEC+ production cut"}
*   "Stock Market Today: Dow Closes Slightly Lower Ahead of Fed Meeting" -> {"significant": false, "category": "Stocks", "reason": "Routine market summary"}
*   "Analyst upgrades MicroTech Inc. (MCTK) to 'Outperform'" -> {"significant": false, "category": "Stocks", "reason": "Minor analyst rating"}
*   "Bitcoin Hovers Around $65,000 as Traders Await Next Catalyst" -> {"significant": false, "category": "Crypto", "reason": "Standard price movement"}
*   "Understanding the Impact of Interest Rates on Bonds" -> {"significant": false, "category": "General", "reason": "Educational content"}
*   "European Leaders Meet to Discuss Regional Cooperation" -> {"significant": false, "category": "Geopolitics", "reason": "Routine meeting/Vague"}

**FINAL JSON OUTPUT (ONLY the JSON object):**`

func buildPrompt(headline string) string {
	return fmt.Sprintf(promptTemplate, headline)
}
