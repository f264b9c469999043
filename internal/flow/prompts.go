package flow

// Prompt templates for campaign generation. Placeholders are filled with
// fmt.Sprintf in the agents; each template documents its argument order.

// strategyDevelopmentSystemPrompt frames the LLM as a campaign strategist.
const strategyDevelopmentSystemPrompt = `You are an expert social media strategist with deep knowledge of platform algorithms, audience behavior, and campaign optimization. Your role is to develop comprehensive, data-driven social media strategies that align with business objectives.

Key Responsibilities:
1. Translate business goals into actionable social media strategies
2. Recommend optimal platform mix and content approaches
3. Develop content pillars and messaging frameworks
4. Create performance metrics and success indicators
5. Provide strategic recommendations based on industry best practices

Maintain a strategic, analytical approach while being practical and actionable.`

// campaignStrategyPrompt args: brand analysis, objectives, platforms, budget, timeline.
const campaignStrategyPrompt = `Develop a comprehensive social media campaign strategy based on the brand analysis and business objectives.

Brand Analysis:
%s

Campaign Objectives:
%s

Target Platforms:
%s

Budget Considerations:
%s

Timeline:
%s

Create a detailed strategy including:

1. **Strategic Overview**
   - Campaign objectives and success metrics
   - Target audience segmentation strategy
   - Key performance indicators (KPIs)
   - Overall campaign theme and narrative

2. **Platform Strategy**
   - Platform-specific objectives and approaches
   - Content format recommendations for each platform
   - Posting frequency and timing strategy

3. **Content Strategy Framework**
   - 4-6 core content pillars
   - Content mix and balance (educational, entertaining, promotional, etc.)
   - Visual style and brand consistency guidelines

4. **Audience Engagement Strategy**
   - Community building approach
   - Engagement tactics and response strategies
   - User-generated content opportunities

5. **Performance and Optimization**
   - Key metrics to track for each platform
   - Optimization strategies for underperforming content

Provide a strategic foundation that will guide content creation and campaign execution.`

// contentPillarGeneratorPrompt args: brand info, objectives, audience, industry.
const contentPillarGeneratorPrompt = `Generate content pillars for a social media strategy based on brand identity and business objectives.

Brand Information:
%s

Business Objectives:
%s

Target Audience:
%s

Industry Context:
%s

Create 4-6 content pillars that align with brand values, serve audience needs, and support business goals.

For each content pillar, provide:
- **Pillar Name & Theme**
- **Core Message/Value Proposition**
- **Content Types** (educational, behind-the-scenes, user-generated, etc.)
- **Example Post Ideas** (3-4 specific examples)

Ensure pillars are diverse, engaging, and sustainable for long-term content creation.`

// platformOptimizationPrompt args: strategy overview, platforms.
const platformOptimizationPrompt = `Optimize the social media strategy for specific platforms based on their unique characteristics and audience behaviors.

Strategy Overview:
%s

Target Platforms:
%s

For each platform, provide:

1. **Platform-Specific Strategy**
   - Optimal content formats and styles
   - Recommended posting frequency and timing
   - Platform-specific features to leverage (Stories, Reels, LinkedIn Articles, etc.)

2. **Content Adaptation Guidelines**
   - How to adapt core content pillars for this platform
   - Platform-specific hashtag and keyword strategies
   - Caption length and style recommendations

3. **Engagement Optimization**
   - Platform algorithm considerations
   - Best practices for maximizing reach and engagement

Provide actionable, platform-specific recommendations that maximize the effectiveness of each social media channel.`

// kpiFrameworkPrompt args: objectives, business goals, platforms, timeline.
const kpiFrameworkPrompt = `Develop a comprehensive KPI framework for measuring social media campaign success.

Campaign Objectives:
%s

Business Goals:
%s

Target Platforms:
%s

Timeline:
%s

Create a measurement framework including:

1. **Primary KPIs** (awareness, engagement, conversion, and community growth metrics)
2. **Secondary KPIs** (content performance and audience behavior metrics)
3. **Benchmark Goals** (realistic targets based on industry standards)
4. **Reporting Structure** (daily/weekly/monthly reporting requirements)

Provide specific, measurable targets that align with business objectives and enable data-driven optimization.`

// contentCreatorSystemPrompt frames the LLM as a content specialist.
const contentCreatorSystemPrompt = `You are a creative social media content specialist with expertise in crafting engaging, platform-optimized content that drives results. You understand platform algorithms, audience psychology, and conversion optimization.

Content Creation Principles:
- Hook readers in the first few words
- Provide clear value (educate, entertain, inspire)
- Include strong calls-to-action
- Optimize for platform algorithms
- Maintain brand authenticity
- Encourage community engagement

Always consider: Platform context, audience behavior, optimal posting times, and brand objectives.`

// socialPostGeneratorPrompt args: brand guidelines, content pillar, platform, objective, audience.
const socialPostGeneratorPrompt = `Create engaging social media posts based on the content strategy and brand guidelines.

Brand Guidelines:
%s

Content Pillar:
%s

Platform:
%s

Post Objective:
%s

Target Audience:
%s

Create a social media post that includes:

1. **Post Content**
   - Compelling hook that grabs attention immediately
   - Value-driven body content
   - Clear call-to-action that encourages engagement
   - Platform-optimized length and formatting

2. **Hashtag Strategy**
   - Mix of branded, industry, and trending hashtags
   - Platform-appropriate hashtag count

3. **Visual Description**
   - Detailed image/video concept description
   - Brand-consistent visual style

4. **Timing and Context**
   - Optimal posting time recommendations

Format the post content exactly as it would appear on the platform, including line breaks and emojis where appropriate.`

// visualContentPrompt args: post content, platform, brand style, visual objective.
const visualContentPrompt = `Generate detailed visual content descriptions for social media posts.

Post Context:
%s

Platform:
%s

Brand Style:
%s

Visual Objective:
%s

Create detailed visual concepts including:

1. **Primary Visual Elements** (main subject, composition, color palette, lighting and mood)
2. **Brand Integration** (logo placement, brand colors and fonts, consistency with brand aesthetic)
3. **Platform Optimization** (correct aspect ratio and dimensions, mobile-first design considerations)
4. **Engagement Elements** (visual hooks that stop scrolling, shareable visual components)

Provide specific, actionable visual direction that a designer or content creator can execute.`

// hashtagStrategyPrompt args: brand info, audience, platforms, content themes.
const hashtagStrategyPrompt = `Develop a comprehensive hashtag strategy for social media campaigns.

Brand Information:
%s

Target Audience:
%s

Platforms:
%s

Content Themes:
%s

Create a hashtag strategy including:

1. **Branded Hashtags** (primary brand hashtag, campaign-specific hashtags)
2. **Industry and Niche Hashtags** (high-volume industry hashtags for reach, niche hashtags for targeted engagement)
3. **Trending and Seasonal Hashtags** (current trending hashtags relevant to brand)
4. **Platform-Specific Strategy**
   - Instagram: Mix of broad and niche hashtags (up to 30)
   - LinkedIn: Professional and industry hashtags (3-5)
   - Twitter: Trending and conversation hashtags (1-3)
   - TikTok: Trending and challenge hashtags (3-5)

Provide specific hashtag recommendations and usage guidelines for each platform and content type.`

// structuredExtractionPrompt asks the LLM to summarize a detailed business message.
// Arg: the raw user message.
const structuredExtractionPrompt = `Parse this business information and extract key details:

User message: "%s"

Extract the following if mentioned:
- Company/Business name
- Business type/industry
- Products/services
- Brand voice/tone
- Target audience
- Customer needs
- Goals
- Platform preferences
- Budget
- Brand colors
- Fonts
- Logo description
- Competitors

Return a simple summary of what you found, not JSON.`

// discoveryQuestionPrompt asks for natural follow-up questions.
// Arg: the last user message.
const discoveryQuestionPrompt = `The user just said: "%s"

You are a friendly marketing consultant having a natural conversation. Based on what they said, ask 1-2 natural follow-up questions to learn more about their business for social media marketing.

Keep it conversational and natural - like you're genuinely interested in their business.`

// greetingCampaignPrompt generates three campaign concepts from the first idea.
// Args: the user's idea, repeated once in the header.
const greetingCampaignPrompt = `Based on the user's idea "%s", create 3 complete Instagram campaign concepts for ProteinRX protein smoothies.

ProteinRX Brand Details:
- Luxury canned protein smoothies
- Target: Gym-goers and fitness enthusiasts (20-45 years old)
- Brand Colors: Red and Black
- Logo: Dumbbell symbol
- Focus: Convenience, accessibility, premium quality

For each campaign, provide:

## Campaign 1:
**Name:** [Creative campaign name]
**Strategy:** [2-3 sentence description of approach]
**Image Prompt:** [Detailed description for AI image generation including colors, props, mood, setting]
**Instagram Caption:** [Complete caption with emojis and hashtags]

## Campaign 2:
**Name:** [Creative campaign name]
**Strategy:** [2-3 sentence description of approach]
**Image Prompt:** [Detailed description for AI image generation including colors, props, mood, setting]
**Instagram Caption:** [Complete caption with emojis and hashtags]

## Campaign 3:
**Name:** [Creative campaign name]
**Strategy:** [2-3 sentence description of approach]
**Image Prompt:** [Detailed description for AI image generation including colors, props, mood, setting]
**Instagram Caption:** [Complete caption with emojis and hashtags]

Make each campaign distinct and actionable for immediate implementation.`

// carouselVariationPrompt args: slide count, base prompt.
const carouselVariationPrompt = `Create %d varied image prompts based on this base concept:

Base prompt: %s

Create variations that:
1. Maintain the core concept and brand consistency
2. Show different angles or aspects of the topic
3. Work well together as a carousel series
4. Each tell part of a visual story

Format as:
Slide 1: [prompt]
Slide 2: [prompt]
Slide 3: [prompt]`
